package user

import (
	"context"
	"errors"

	"atlas-rooms/inventory"
	model2 "atlas-rooms/model"

	"github.com/Chronicle20/atlas-model/model"
	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Processor struct {
	l         logrus.FieldLogger
	ctx       context.Context
	db        *gorm.DB
	t         tenant.Model
	GetById   func(id uint32) (Model, error)
	GetByName func(name string) (Model, error)
}

func NewProcessor(l logrus.FieldLogger, ctx context.Context, db *gorm.DB) *Processor {
	p := &Processor{
		l:   l,
		ctx: ctx,
		db:  db,
		t:   tenant.MustFromContext(ctx),
	}
	p.GetById = model2.CollapseProvider(p.ByIdProvider)
	p.GetByName = model2.CollapseProvider(p.ByNameProvider)
	return p
}

func (p *Processor) WithTransaction(db *gorm.DB) *Processor {
	return &Processor{
		l:         p.l,
		ctx:       p.ctx,
		db:        db,
		t:         p.t,
		GetById:   p.GetById,
		GetByName: p.GetByName,
	}
}

// ByIdProvider always reads the persisted record. Users carry no long-lived
// in-memory mirror, so every operation observes the latest committed state.
func (p *Processor) ByIdProvider(id uint32) model.Provider[Model] {
	return model.Map(Make)(getById(p.t.Id(), id)(p.db))
}

func (p *Processor) ByNameProvider(name string) model.Provider[Model] {
	return model.Map(Make)(getByName(p.t.Id(), name)(p.db))
}

// Ensure returns the user with the given id, creating an empty record when
// none exists yet.
func (p *Processor) Ensure(id uint32, name string) (Model, error) {
	m, err := p.GetById(id)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Model{}, err
	}
	p.l.Debugf("Creating user [%d] on first contact.", id)
	return create(p.db, p.t.Id(), id, name)
}

// PersistInventory writes the user's inventory record. Meant to run inside a
// surrounding transaction via WithTransaction.
func (p *Processor) PersistInventory(id uint32, items inventory.Model) error {
	return updateInventory(p.db, p.t.Id(), id, items.Serialize())
}
