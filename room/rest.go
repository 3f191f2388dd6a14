package room

import (
	"atlas-rooms/item"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
)

type RestModel struct {
	Id    uuid.UUID        `json:"-"`
	Name  string           `json:"name"`
	Items []item.RestModel `json:"items"`
}

func (r RestModel) GetName() string {
	return "rooms"
}

func (r RestModel) GetID() string {
	return r.Id.String()
}

func (r *RestModel) SetID(strId string) error {
	id, err := uuid.Parse(strId)
	if err != nil {
		return err
	}
	r.Id = id
	return nil
}

func Transform(m Model) (RestModel, error) {
	items, err := model.SliceMap(item.Transform)(model.FixedProvider(m.Items().Items()))(model.ParallelMap())()
	if err != nil {
		return RestModel{}, err
	}
	return RestModel{
		Id:    m.Id(),
		Name:  m.Name(),
		Items: items,
	}, nil
}
