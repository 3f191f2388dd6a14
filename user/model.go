package user

import (
	"atlas-rooms/inventory"
)

type Model struct {
	id    uint32
	name  string
	items inventory.Model
}

func (m Model) Id() uint32 {
	return m.id
}

func (m Model) Name() string {
	return m.name
}

func (m Model) Items() inventory.Model {
	return m.items
}

func Clone(m Model) *ModelBuilder {
	return &ModelBuilder{
		id:    m.id,
		name:  m.name,
		items: m.items,
	}
}

type ModelBuilder struct {
	id    uint32
	name  string
	items inventory.Model
}

func NewBuilder(id uint32, name string) *ModelBuilder {
	return &ModelBuilder{
		id:    id,
		name:  name,
		items: inventory.NewModel(),
	}
}

func (b *ModelBuilder) SetItems(items inventory.Model) *ModelBuilder {
	b.items = items
	return b
}

func (b *ModelBuilder) Build() Model {
	return Model{
		id:    b.id,
		name:  b.name,
		items: b.items,
	}
}
