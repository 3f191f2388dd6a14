package user

import (
	"atlas-rooms/inventory"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func create(db *gorm.DB, tenantId uuid.UUID, id uint32, name string) (Model, error) {
	e := &Entity{
		TenantId:  tenantId,
		Id:        id,
		Name:      name,
		Inventory: make(inventory.Records),
	}

	err := db.Create(e).Error
	if err != nil {
		return Model{}, err
	}
	return Make(*e)
}

func updateInventory(db *gorm.DB, tenantId uuid.UUID, id uint32, records inventory.Records) error {
	return db.Model(&Entity{}).
		Where("tenant_id = ? AND id = ?", tenantId, id).
		Update("inventory", records).Error
}
