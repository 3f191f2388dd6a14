package item

// Record is the shape of one item stack inside a persisted inventory column.
// Fields holding their default value are omitted to keep the stored document
// compact; Deserialize restores them so runtime models always carry concrete
// values.
type Record struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Quantity    *uint32  `json:"quantity,omitempty"`
	Hidden      bool     `json:"hidden,omitempty"`
	Locked      bool     `json:"locked,omitempty"`
	Editable    bool     `json:"editable,omitempty"`
	Children    []Record `json:"children,omitempty"`
}

func Serialize(m Model) Record {
	r := Record{
		Name:        m.name,
		Description: m.description,
		Hidden:      m.hidden,
		Locked:      m.locked,
		Editable:    m.editable,
	}
	if m.quantity != 1 {
		quantity := m.quantity
		r.Quantity = &quantity
	}
	if len(m.children) > 0 {
		r.Children = make([]Record, 0, len(m.children))
		for _, c := range m.children {
			r.Children = append(r.Children, Serialize(c))
		}
	}
	return r
}

func Deserialize(r Record) (Model, error) {
	b := NewBuilder(r.Name, r.Description).
		SetHidden(r.Hidden).
		SetLocked(r.Locked).
		SetEditable(r.Editable)
	if r.Quantity != nil {
		b.SetQuantity(*r.Quantity)
	}
	for _, cr := range r.Children {
		c, err := Deserialize(cr)
		if err != nil {
			return Model{}, err
		}
		b.AddChild(c)
	}
	return b.Build(), nil
}
