package room

import (
	"atlas-rooms/inventory"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func create(db *gorm.DB, tenantId uuid.UUID, name string) (Model, error) {
	e := &Entity{
		TenantId:  tenantId,
		Id:        uuid.New(),
		Name:      name,
		Inventory: make(inventory.Records),
	}

	err := db.Create(e).Error
	if err != nil {
		return Model{}, err
	}
	return Make(*e)
}

func updateInventory(db *gorm.DB, tenantId uuid.UUID, id uuid.UUID, records inventory.Records) error {
	return db.Model(&Entity{}).
		Where("tenant_id = ? AND id = ?", tenantId, id).
		Update("inventory", records).Error
}

func deleteById(db *gorm.DB, tenantId uuid.UUID, id uuid.UUID) error {
	return db.Where(&Entity{TenantId: tenantId, Id: id}).Delete(&Entity{}).Error
}
