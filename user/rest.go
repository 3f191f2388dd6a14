package user

import (
	"strconv"

	"atlas-rooms/item"

	"github.com/Chronicle20/atlas-model/model"
)

type RestModel struct {
	Id    uint32           `json:"-"`
	Name  string           `json:"name"`
	Items []item.RestModel `json:"items"`
}

func (r RestModel) GetName() string {
	return "users"
}

func (r RestModel) GetID() string {
	return strconv.Itoa(int(r.Id))
}

func (r *RestModel) SetID(strId string) error {
	id, err := strconv.Atoi(strId)
	if err != nil {
		return err
	}
	r.Id = uint32(id)
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
