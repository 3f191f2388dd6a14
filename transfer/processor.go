package transfer

import (
	"context"

	"atlas-rooms/inventory"
	"atlas-rooms/item"
	"atlas-rooms/kafka/message"
	inventory2 "atlas-rooms/kafka/message/inventory"
	inventory3 "atlas-rooms/kafka/producer/inventory"
	"atlas-rooms/kafka/producer"
	"atlas-rooms/lock"
	"atlas-rooms/room"
	"atlas-rooms/user"

	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Processor coordinates multi-record inventory mutations. Every mutation
// acquires a compound lock over all touched holders, reloads their
// authoritative state, validates, and writes all sides inside one persisted
// transaction, compensating the room mirror when the write fails.
type Processor struct {
	l             logrus.FieldLogger
	ctx           context.Context
	db            *gorm.DB
	t             tenant.Model
	registry      *lock.Registry
	roomProcessor *room.Processor
	userProcessor *user.Processor
}

func NewProcessor(l logrus.FieldLogger, ctx context.Context, db *gorm.DB) *Processor {
	return &Processor{
		l:             l,
		ctx:           ctx,
		db:            db,
		t:             tenant.MustFromContext(ctx),
		registry:      lock.GetRegistry(),
		roomProcessor: room.NewProcessor(l, ctx, db),
		userProcessor: user.NewProcessor(l, ctx, db),
	}
}

// party is one holder's working state for the duration of a mutation. items
// is a private clone safe to mutate; prior is the mirror snapshot restored
// if the persisted write fails.
type party struct {
	holder Holder
	items  inventory.Model
	prior  inventory.Model
	name   string
}

func (p *Processor) lockRequest(holders ...Holder) (lock.Request, error) {
	var roomKey *lock.Key
	userKeys := make([]lock.Key, 0, len(holders))
	for _, h := range holders {
		if h.IsRoom() {
			if roomKey != nil {
				return lock.Request{}, ErrTwoRoomHolders
			}
			k := lock.RoomKey(p.t.Id(), h.RoomId())
			roomKey = &k
		} else {
			userKeys = append(userKeys, lock.UserKey(p.t.Id(), h.UserId()))
		}
	}
	return lock.NewRequest(roomKey, userKeys...), nil
}

// load reloads the authoritative state of a holder. Must run with the
// holder's lock key held, so values read before the lock was granted are
// never trusted.
func (p *Processor) load(h Holder) (*party, error) {
	if h.IsRoom() {
		m, err := p.roomProcessor.Reload(h.RoomId())
		if err != nil {
			return nil, err
		}
		return &party{holder: h, items: m.Items().Clone(), prior: m.Items(), name: m.Name()}, nil
	}
	m, err := p.userProcessor.GetById(h.UserId())
	if err != nil {
		return nil, err
	}
	return &party{holder: h, items: m.Items()}, nil
}

func (p *Processor) persist(tx *gorm.DB, pt *party) error {
	if pt.holder.IsRoom() {
		return p.roomProcessor.WithTransaction(tx).PersistInventory(pt.holder.RoomId(), pt.items)
	}
	return p.userProcessor.WithTransaction(tx).PersistInventory(pt.holder.UserId(), pt.items)
}

// publishMirrors makes room mirrors anticipate the mutation before the
// commit outcome is known.
func (p *Processor) publishMirrors(parties ...*party) {
	for _, pt := range parties {
		if pt.holder.IsRoom() {
			room.GetMirrorRegistry().Put(p.t, pt.holder.RoomId(), pt.items)
		}
	}
}

// restoreMirrors is the compensating mutation: republish the snapshot taken
// before the mirror anticipated a write that was rolled back.
func (p *Processor) restoreMirrors(parties ...*party) {
	for _, pt := range parties {
		if pt.holder.IsRoom() {
			room.GetMirrorRegistry().Put(p.t, pt.holder.RoomId(), pt.prior)
		}
	}
}

func roomName(parties ...*party) string {
	for _, pt := range parties {
		if pt.holder.IsRoom() {
			return pt.name
		}
	}
	return ""
}

// Transfer moves quantity units of the named item from source to
// destination as one all-or-nothing unit. It is the single entry point all
// transferring verbs share.
func (p *Processor) Transfer(source Holder, destination Holder, itemName string, quantity uint32) (Summary, error) {
	if quantity == 0 {
		return Summary{}, ErrInvalidQuantity
	}
	if source == destination {
		return Summary{}, ErrSameHolder
	}

	req, err := p.lockRequest(source, destination)
	if err != nil {
		return Summary{}, err
	}
	p.registry.Acquire(req)
	defer p.registry.Release(req)

	src, err := p.load(source)
	if err != nil {
		return Summary{}, err
	}
	dst, err := p.load(destination)
	if err != nil {
		return Summary{}, err
	}

	i, ok := src.items.Get(itemName)
	if !ok {
		return Summary{}, ItemNotFoundError{Name: itemName, InRoom: source.IsRoom()}
	}
	if i.Locked() {
		return Summary{}, ItemLockedError{Name: itemName}
	}
	if i.Quantity() < quantity {
		return Summary{}, InsufficientQuantityError{Name: itemName, Requested: quantity, Available: i.Quantity()}
	}

	if remaining := i.Quantity() - quantity; remaining == 0 {
		src.items.Remove(itemName)
	} else {
		src.items.Set(item.Clone(i).SetQuantity(remaining).Build())
	}

	if existing, ok := dst.items.Get(itemName); ok {
		dst.items.Set(item.Clone(existing).SetQuantity(existing.Quantity() + quantity).Build())
	} else {
		dst.items.Set(item.Clone(i).SetQuantity(quantity).Build())
	}

	p.publishMirrors(src, dst)

	txErr := p.db.Transaction(func(tx *gorm.DB) error {
		if err := p.persist(tx, src); err != nil {
			return err
		}
		return p.persist(tx, dst)
	})
	if txErr != nil {
		p.restoreMirrors(src, dst)
		p.l.WithError(txErr).Errorf("Unable to persist transfer of [%d] of [%s].", quantity, itemName)
		return Summary{}, txErr
	}

	return Summary{itemName: itemName, quantity: quantity, roomName: roomName(src, dst)}, nil
}

// mutateHolder runs a single-holder mutation under the holder's lock with
// the same reload, persist, and mirror-compensation shape as Transfer.
func (p *Processor) mutateHolder(h Holder, fn func(items inventory.Model) error) (string, error) {
	req, err := p.lockRequest(h)
	if err != nil {
		return "", err
	}
	p.registry.Acquire(req)
	defer p.registry.Release(req)

	pt, err := p.load(h)
	if err != nil {
		return "", err
	}
	if err = fn(pt.items); err != nil {
		return "", err
	}

	p.publishMirrors(pt)

	txErr := p.db.Transaction(func(tx *gorm.DB) error {
		return p.persist(tx, pt)
	})
	if txErr != nil {
		p.restoreMirrors(pt)
		p.l.WithError(txErr).Errorf("Unable to persist inventory mutation.")
		return "", txErr
	}
	return pt.name, nil
}

func (p *Processor) Give(mb *message.Buffer) func(userId uint32, recipientId uint32, itemName string, quantity uint32) (Summary, error) {
	return func(userId uint32, recipientId uint32, itemName string, quantity uint32) (Summary, error) {
		p.l.Debugf("User [%d] attempting to give [%d] of [%s] to user [%d].", userId, quantity, itemName, recipientId)
		s, err := p.Transfer(UserHolder(userId), UserHolder(recipientId), itemName, quantity)
		if err != nil {
			return Summary{}, err
		}
		err = mb.Put(inventory2.EnvEventTopicStatus, inventory3.GivenEventStatusProvider(userId, recipientId, itemName, s.Quantity()))
		if err != nil {
			return Summary{}, err
		}
		return s, nil
	}
}

func (p *Processor) Take(mb *message.Buffer) func(userId uint32, roomHolder Holder, itemName string, quantity uint32) (Summary, error) {
	return func(userId uint32, roomHolder Holder, itemName string, quantity uint32) (Summary, error) {
		p.l.Debugf("User [%d] attempting to take [%d] of [%s].", userId, quantity, itemName)
		s, err := p.Transfer(roomHolder, UserHolder(userId), itemName, quantity)
		if err != nil {
			return Summary{}, err
		}
		err = mb.Put(inventory2.EnvEventTopicStatus, inventory3.TakenEventStatusProvider(userId, roomHolder.RoomId(), s.RoomName(), itemName, s.Quantity()))
		if err != nil {
			return Summary{}, err
		}
		return s, nil
	}
}

func (p *Processor) Drop(mb *message.Buffer) func(userId uint32, roomHolder Holder, itemName string, quantity uint32) (Summary, error) {
	return func(userId uint32, roomHolder Holder, itemName string, quantity uint32) (Summary, error) {
		p.l.Debugf("User [%d] attempting to drop [%d] of [%s].", userId, quantity, itemName)
		s, err := p.Transfer(UserHolder(userId), roomHolder, itemName, quantity)
		if err != nil {
			return Summary{}, err
		}
		err = mb.Put(inventory2.EnvEventTopicStatus, inventory3.DroppedEventStatusProvider(userId, roomHolder.RoomId(), s.RoomName(), itemName, s.Quantity()))
		if err != nil {
			return Summary{}, err
		}
		return s, nil
	}
}

// Consume destroys units from the acting user's own inventory; there is no
// destination party.
func (p *Processor) Consume(mb *message.Buffer) func(userId uint32, itemName string, quantity uint32) (Summary, error) {
	return func(userId uint32, itemName string, quantity uint32) (Summary, error) {
		if quantity == 0 {
			return Summary{}, ErrInvalidQuantity
		}
		p.l.Debugf("User [%d] attempting to consume [%d] of [%s].", userId, quantity, itemName)
		_, err := p.mutateHolder(UserHolder(userId), func(items inventory.Model) error {
			i, ok := items.Get(itemName)
			if !ok {
				return ItemNotFoundError{Name: itemName}
			}
			if i.Locked() {
				return ItemLockedError{Name: itemName}
			}
			if i.Quantity() < quantity {
				return InsufficientQuantityError{Name: itemName, Requested: quantity, Available: i.Quantity()}
			}
			if remaining := i.Quantity() - quantity; remaining == 0 {
				items.Remove(itemName)
			} else {
				items.Set(item.Clone(i).SetQuantity(remaining).Build())
			}
			return nil
		})
		if err != nil {
			return Summary{}, err
		}
		err = mb.Put(inventory2.EnvEventTopicStatus, inventory3.ConsumedEventStatusProvider(userId, itemName, quantity))
		if err != nil {
			return Summary{}, err
		}
		return Summary{itemName: itemName, quantity: quantity}, nil
	}
}

func (p *Processor) CreateItem(mb *message.Buffer) func(actorId uint32, h Holder, itemName string, description string, quantity uint32, hidden bool, locked bool, editable bool) error {
	return func(actorId uint32, h Holder, itemName string, description string, quantity uint32, hidden bool, locked bool, editable bool) error {
		if quantity == 0 {
			return ErrInvalidQuantity
		}
		p.l.Debugf("User [%d] attempting to create item [%s].", actorId, itemName)
		_, err := p.mutateHolder(h, func(items inventory.Model) error {
			if _, ok := items.Get(itemName); ok {
				return ItemExistsError{Name: itemName}
			}
			items.Set(item.NewBuilder(itemName, description).
				SetQuantity(quantity).
				SetHidden(hidden).
				SetLocked(locked).
				SetEditable(editable).
				Build())
			return nil
		})
		if err != nil {
			return err
		}
		return mb.Put(inventory2.EnvEventTopicStatus, inventory3.CreatedEventStatusProvider(actorId, holderBody(h), itemName, quantity))
	}
}

func (p *Processor) UpdateItem(mb *message.Buffer) func(actorId uint32, h Holder, itemName string, description string, hidden bool, locked bool, editable bool) error {
	return func(actorId uint32, h Holder, itemName string, description string, hidden bool, locked bool, editable bool) error {
		p.l.Debugf("User [%d] attempting to update item [%s].", actorId, itemName)
		_, err := p.mutateHolder(h, func(items inventory.Model) error {
			i, ok := items.Get(itemName)
			if !ok {
				return ItemNotFoundError{Name: itemName, InRoom: h.IsRoom()}
			}
			if !i.Editable() {
				return ItemNotEditableError{Name: itemName}
			}
			items.Set(item.Clone(i).
				SetDescription(description).
				SetHidden(hidden).
				SetLocked(locked).
				SetEditable(editable).
				Build())
			return nil
		})
		if err != nil {
			return err
		}
		return mb.Put(inventory2.EnvEventTopicStatus, inventory3.UpdatedEventStatusProvider(actorId, holderBody(h), itemName))
	}
}

// DestroyItem removes a stack outright. Unlike the player verbs it ignores
// the locked flag; an explicit administrative delete is not a transfer.
func (p *Processor) DestroyItem(mb *message.Buffer) func(actorId uint32, h Holder, itemName string) error {
	return func(actorId uint32, h Holder, itemName string) error {
		p.l.Debugf("User [%d] attempting to destroy item [%s].", actorId, itemName)
		_, err := p.mutateHolder(h, func(items inventory.Model) error {
			if _, ok := items.Get(itemName); !ok {
				return ItemNotFoundError{Name: itemName, InRoom: h.IsRoom()}
			}
			items.Remove(itemName)
			return nil
		})
		if err != nil {
			return err
		}
		return mb.Put(inventory2.EnvEventTopicStatus, inventory3.DestroyedEventStatusProvider(actorId, holderBody(h), itemName))
	}
}

func holderBody(h Holder) inventory2.HolderBody {
	if h.IsRoom() {
		return inventory2.HolderBody{HolderKind: "ROOM", RoomId: h.RoomId()}
	}
	return inventory2.HolderBody{HolderKind: "USER", TargetUserId: h.UserId()}
}

func (p *Processor) emitError(userId uint32, commandType string, actionErr error) {
	err := message.Emit(producer.ProviderImpl(p.l)(p.ctx))(func(buf *message.Buffer) error {
		return buf.Put(inventory2.EnvEventTopicStatus, inventory3.ErrorEventStatusProvider(userId, commandType, actionErr))
	})
	if err != nil {
		p.l.WithError(err).Errorf("Unable to emit error event for user [%d].", userId)
	}
}

func (p *Processor) GiveAndEmit(userId uint32, recipientId uint32, itemName string, quantity uint32) (Summary, error) {
	var s Summary
	err := message.Emit(producer.ProviderImpl(p.l)(p.ctx))(func(buf *message.Buffer) error {
		var err error
		s, err = p.Give(buf)(userId, recipientId, itemName, quantity)
		return err
	})
	if err != nil {
		p.emitError(userId, inventory2.CommandGive, err)
	}
	return s, err
}

func (p *Processor) TakeAndEmit(userId uint32, roomHolder Holder, itemName string, quantity uint32) (Summary, error) {
	var s Summary
	err := message.Emit(producer.ProviderImpl(p.l)(p.ctx))(func(buf *message.Buffer) error {
		var err error
		s, err = p.Take(buf)(userId, roomHolder, itemName, quantity)
		return err
	})
	if err != nil {
		p.emitError(userId, inventory2.CommandTake, err)
	}
	return s, err
}

func (p *Processor) DropAndEmit(userId uint32, roomHolder Holder, itemName string, quantity uint32) (Summary, error) {
	var s Summary
	err := message.Emit(producer.ProviderImpl(p.l)(p.ctx))(func(buf *message.Buffer) error {
		var err error
		s, err = p.Drop(buf)(userId, roomHolder, itemName, quantity)
		return err
	})
	if err != nil {
		p.emitError(userId, inventory2.CommandDrop, err)
	}
	return s, err
}

func (p *Processor) ConsumeAndEmit(userId uint32, itemName string, quantity uint32) (Summary, error) {
	var s Summary
	err := message.Emit(producer.ProviderImpl(p.l)(p.ctx))(func(buf *message.Buffer) error {
		var err error
		s, err = p.Consume(buf)(userId, itemName, quantity)
		return err
	})
	if err != nil {
		p.emitError(userId, inventory2.CommandConsume, err)
	}
	return s, err
}

func (p *Processor) CreateItemAndEmit(actorId uint32, h Holder, itemName string, description string, quantity uint32, hidden bool, locked bool, editable bool) error {
	err := message.Emit(producer.ProviderImpl(p.l)(p.ctx))(func(buf *message.Buffer) error {
		return p.CreateItem(buf)(actorId, h, itemName, description, quantity, hidden, locked, editable)
	})
	if err != nil {
		p.emitError(actorId, inventory2.CommandCreateItem, err)
	}
	return err
}

func (p *Processor) UpdateItemAndEmit(actorId uint32, h Holder, itemName string, description string, hidden bool, locked bool, editable bool) error {
	err := message.Emit(producer.ProviderImpl(p.l)(p.ctx))(func(buf *message.Buffer) error {
		return p.UpdateItem(buf)(actorId, h, itemName, description, hidden, locked, editable)
	})
	if err != nil {
		p.emitError(actorId, inventory2.CommandUpdateItem, err)
	}
	return err
}

func (p *Processor) DestroyItemAndEmit(actorId uint32, h Holder, itemName string) error {
	err := message.Emit(producer.ProviderImpl(p.l)(p.ctx))(func(buf *message.Buffer) error {
		return p.DestroyItem(buf)(actorId, h, itemName)
	})
	if err != nil {
		p.emitError(actorId, inventory2.CommandDestroyItem, err)
	}
	return err
}
