package inventory

import (
	"sort"

	"atlas-rooms/item"
)

// Model is the inventory of a single holder, keyed by item name. The zero
// value is not usable; construct via NewModel or Make.
type Model struct {
	items map[string]item.Model
}

func NewModel() Model {
	return Model{items: make(map[string]item.Model)}
}

func Make(rs Records) (Model, error) {
	m := NewModel()
	for name, r := range rs {
		i, err := item.Deserialize(r)
		if err != nil {
			return Model{}, err
		}
		m.items[name] = i
	}
	return m, nil
}

func (m Model) Get(name string) (item.Model, bool) {
	i, ok := m.items[name]
	return i, ok
}

// Visible applies the hidden rule. A hidden item is missing to any viewer
// without elevated privilege.
func (m Model) Visible(name string, elevated bool) (item.Model, bool) {
	i, ok := m.items[name]
	if !ok {
		return item.Model{}, false
	}
	if i.Hidden() && !elevated {
		return item.Model{}, false
	}
	return i, true
}

func (m Model) Items() []item.Model {
	names := make([]string, 0, len(m.items))
	for name := range m.items {
		names = append(names, name)
	}
	sort.Strings(names)

	is := make([]item.Model, 0, len(names))
	for _, name := range names {
		is = append(is, m.items[name])
	}
	return is
}

// VisibleItems lists items in name order, dropping hidden ones unless the
// viewer is elevated.
func (m Model) VisibleItems(elevated bool) []item.Model {
	is := make([]item.Model, 0, len(m.items))
	for _, i := range m.Items() {
		if i.Hidden() && !elevated {
			continue
		}
		is = append(is, i)
	}
	return is
}

func (m Model) Size() int {
	return len(m.items)
}

func (m Model) Set(i item.Model) {
	m.items[i.Name()] = i
}

func (m Model) Remove(name string) {
	delete(m.items, name)
}

func (m Model) Clone() Model {
	c := NewModel()
	for name, i := range m.items {
		c.items[name] = i
	}
	return c
}

func (m Model) Serialize() Records {
	rs := make(Records, len(m.items))
	for name, i := range m.items {
		rs[name] = item.Serialize(i)
	}
	return rs
}
