package item

type RestModel struct {
	Name        string      `json:"-"`
	Description string      `json:"description"`
	Quantity    uint32      `json:"quantity"`
	Hidden      bool        `json:"hidden"`
	Locked      bool        `json:"locked"`
	Editable    bool        `json:"editable"`
	Children    []RestModel `json:"children"`
}

func (r RestModel) GetName() string {
	return "items"
}

func (r RestModel) GetID() string {
	return r.Name
}

func (r *RestModel) SetID(strId string) error {
	r.Name = strId
	return nil
}

func Transform(m Model) (RestModel, error) {
	children := make([]RestModel, 0, len(m.children))
	for _, c := range m.children {
		cr, err := Transform(c)
		if err != nil {
			return RestModel{}, err
		}
		children = append(children, cr)
	}
	return RestModel{
		Name:        m.name,
		Description: m.description,
		Quantity:    m.quantity,
		Hidden:      m.hidden,
		Locked:      m.locked,
		Editable:    m.editable,
		Children:    children,
	}, nil
}
