package user

import (
	"atlas-rooms/inventory"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migration(db *gorm.DB) error {
	return db.AutoMigrate(&Entity{})
}

// Entity rows are keyed by the id the chat platform assigned; the service
// never mints user ids itself.
type Entity struct {
	TenantId  uuid.UUID         `gorm:"primaryKey;not null"`
	Id        uint32            `gorm:"primaryKey;not null"`
	Name      string            `gorm:"not null"`
	Inventory inventory.Records `gorm:"type:json;not null;default:'{}'"`
}

func (e Entity) TableName() string {
	return "users"
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
