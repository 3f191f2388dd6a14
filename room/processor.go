package room

import (
	"context"

	"atlas-rooms/inventory"
	"atlas-rooms/kafka/message"
	"atlas-rooms/lock"
	room2 "atlas-rooms/kafka/message/room"
	room3 "atlas-rooms/kafka/producer/room"
	model2 "atlas-rooms/model"
	"atlas-rooms/kafka/producer"

	"github.com/Chronicle20/atlas-model/model"
	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Processor struct {
	l         logrus.FieldLogger
	ctx       context.Context
	db        *gorm.DB
	t         tenant.Model
	GetById   func(id uuid.UUID) (Model, error)
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

func (p *Processor) ByIdProvider(id uuid.UUID) model.Provider[Model] {
	return model.Map(Make)(getById(p.t.Id(), id)(p.db))
}

func (p *Processor) ByNameProvider(name string) model.Provider[Model] {
	return model.Map(Make)(getByName(p.t.Id(), name)(p.db))
}

func (p *Processor) AllProvider() model.Provider[[]Model] {
	return model.SliceMap(Make)(getAll(p.t.Id())(p.db))(model.ParallelMap())
}

// Reload reads the authoritative room record and republishes the in-memory
// mirror from it. Callers mutating inventory must hold the room's lock key.
func (p *Processor) Reload(id uuid.UUID) (Model, error) {
	m, err := p.GetById(id)
	if err != nil {
		return Model{}, err
	}
	GetMirrorRegistry().Put(p.t, id, m.Items())
	return m, nil
}

// ItemsProvider serves reads from the mirror, falling back to an
// authoritative load the first time a room is touched.
func (p *Processor) ItemsProvider(id uuid.UUID) model.Provider[inventory.Model] {
	if items, ok := GetMirrorRegistry().Get(p.t, id); ok {
		return model.FixedProvider(items)
	}
	m, err := p.Reload(id)
	if err != nil {
		return model.ErrorProvider[inventory.Model](err)
	}
	return model.FixedProvider(m.Items())
}

// PersistInventory writes the room's inventory record. Meant to run inside a
// surrounding transaction via WithTransaction.
func (p *Processor) PersistInventory(id uuid.UUID, items inventory.Model) error {
	return updateInventory(p.db, p.t.Id(), id, items.Serialize())
}

func (p *Processor) Create(mb *message.Buffer) func(name string) (Model, error) {
	return func(name string) (Model, error) {
		p.l.Debugf("Attempting to create room [%s].", name)
		var m Model
		txErr := p.db.Transaction(func(tx *gorm.DB) error {
			var err error
			m, err = create(tx, p.t.Id(), name)
			if err != nil {
				return err
			}
			return mb.Put(room2.EnvEventTopicStatus, room3.CreatedEventStatusProvider(m.Id(), m.Name()))
		})
		if txErr != nil {
			return Model{}, txErr
		}
		GetMirrorRegistry().Put(p.t, m.Id(), m.Items())
		p.l.Debugf("Created room [%s] as [%s].", name, m.Id().String())
		return m, nil
	}
}

func (p *Processor) CreateAndEmit(name string) (Model, error) {
	var m Model
	err := message.Emit(producer.ProviderImpl(p.l)(p.ctx))(func(buf *message.Buffer) error {
		var err error
		m, err = p.Create(buf)(name)
		return err
	})
	return m, err
}

// Delete removes the room under its lock key so no in-flight transfer can
// republish a mirror for a room that no longer exists.
func (p *Processor) Delete(mb *message.Buffer) func(id uuid.UUID) error {
	return func(id uuid.UUID) error {
		p.l.Debugf("Attempting to delete room [%s].", id.String())
		req := lock.ForRoom(lock.RoomKey(p.t.Id(), id))
		lock.GetRegistry().Acquire(req)
		defer lock.GetRegistry().Release(req)
		txErr := p.db.Transaction(func(tx *gorm.DB) error {
			err := deleteById(tx, p.t.Id(), id)
			if err != nil {
				return err
			}
			return mb.Put(room2.EnvEventTopicStatus, room3.DeletedEventStatusProvider(id))
		})
		if txErr != nil {
			p.l.WithError(txErr).Errorf("Unable to delete room [%s].", id.String())
			return txErr
		}
		GetMirrorRegistry().Remove(p.t, id)
		p.l.Debugf("Deleted room [%s].", id.String())
		return nil
	}
}

func (p *Processor) DeleteAndEmit(id uuid.UUID) error {
	return message.Emit(producer.ProviderImpl(p.l)(p.ctx))(func(buf *message.Buffer) error {
		return p.Delete(buf)(id)
	})
}
