package item

type Model struct {
	name        string
	description string
	quantity    uint32
	hidden      bool
	locked      bool
	editable    bool
	children    []Model
}

func (m Model) Name() string {
	return m.name
}

func (m Model) Description() string {
	return m.description
}

func (m Model) Quantity() uint32 {
	return m.quantity
}

func (m Model) Hidden() bool {
	return m.hidden
}

func (m Model) Locked() bool {
	return m.locked
}

func (m Model) Editable() bool {
	return m.editable
}

func (m Model) Children() []Model {
	return m.children
}

func Clone(m Model) *ModelBuilder {
	return &ModelBuilder{
		name:        m.name,
		description: m.description,
		quantity:    m.quantity,
		hidden:      m.hidden,
		locked:      m.locked,
		editable:    m.editable,
		children:    m.children,
	}
}

type ModelBuilder struct {
	name        string
	description string
	quantity    uint32
	hidden      bool
	locked      bool
	editable    bool
	children    []Model
}

func NewBuilder(name string, description string) *ModelBuilder {
	return &ModelBuilder{
		name:        name,
		description: description,
		quantity:    1,
		hidden:      false,
		locked:      false,
		editable:    false,
		children:    make([]Model, 0),
	}
}

func (b *ModelBuilder) SetDescription(description string) *ModelBuilder {
	b.description = description
	return b
}

func (b *ModelBuilder) SetQuantity(quantity uint32) *ModelBuilder {
	b.quantity = quantity
	return b
}

func (b *ModelBuilder) SetHidden(hidden bool) *ModelBuilder {
	b.hidden = hidden
	return b
}

func (b *ModelBuilder) SetLocked(locked bool) *ModelBuilder {
	b.locked = locked
	return b
}

func (b *ModelBuilder) SetEditable(editable bool) *ModelBuilder {
	b.editable = editable
	return b
}

func (b *ModelBuilder) AddChild(c Model) *ModelBuilder {
	b.children = append(b.children, c)
	return b
}

func (b *ModelBuilder) SetChildren(cs []Model) *ModelBuilder {
	b.children = cs
	return b
}

func (b *ModelBuilder) Build() Model {
	return Model{
		name:        b.name,
		description: b.description,
		quantity:    b.quantity,
		hidden:      b.hidden,
		locked:      b.locked,
		editable:    b.editable,
		children:    b.children,
	}
}
