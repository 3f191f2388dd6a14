package room

import (
	"atlas-rooms/inventory"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migration(db *gorm.DB) error {
	return db.AutoMigrate(&Entity{})
}

type Entity struct {
	TenantId  uuid.UUID         `gorm:"not null;uniqueIndex:idx_room_tenant_name"`
	Id        uuid.UUID         `gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string            `gorm:"not null;uniqueIndex:idx_room_tenant_name"`
	Inventory inventory.Records `gorm:"type:json;not null;default:'{}'"`
}

func (e Entity) TableName() string {
	return "rooms"
}

func Make(e Entity) (Model, error) {
	items, err := inventory.Make(e.Inventory)
	if err != nil {
		return Model{}, err
	}
	return Model{
		id:    e.Id,
		name:  e.Name,
		items: items,
	}, nil
}
