package transfer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"atlas-rooms/kafka/message"
	"atlas-rooms/room"
	"atlas-rooms/transfer"
	"atlas-rooms/user"

	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDatabase(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	var migrators []func(db *gorm.DB) error
	migrators = append(migrators, room.Migration, user.Migration)

	for _, migrator := range migrators {
		if err := migrator(db); err != nil {
			t.Fatalf("Failed to migrate database: %v", err)
		}
	}
	return db
}

func testTenant() tenant.Model {
	t, _ := tenant.Create(uuid.New(), "GMS", 83, 1)
	return t
}

func testLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

type fixture struct {
	l   logrus.FieldLogger
	te  tenant.Model
	ctx context.Context
	db  *gorm.DB
	tp  *transfer.Processor
	up  *user.Processor
	rp  *room.Processor
	mb  *message.Buffer
}

func setup(t *testing.T) *fixture {
	l := testLogger()
	te := testTenant()
	ctx := tenant.WithContext(context.Background(), te)
	db := testDatabase(t)
	return &fixture{
		l:   l,
		te:  te,
		ctx: ctx,
		db:  db,
		tp:  transfer.NewProcessor(l, ctx, db),
		up:  user.NewProcessor(l, ctx, db),
		rp:  room.NewProcessor(l, ctx, db),
		mb:  message.NewBuffer(),
	}
}

func (f *fixture) seedUser(t *testing.T, id uint32, name string) {
	_, err := f.up.Ensure(id, name)
	if err != nil {
		t.Fatalf("Failed to create user [%d]: %v", id, err)
	}
}

func (f *fixture) seedRoom(t *testing.T, name string) room.Model {
	m, err := f.rp.Create(f.mb)(name)
	if err != nil {
		t.Fatalf("Failed to create room [%s]: %v", name, err)
	}
	return m
}

func (f *fixture) seedItem(t *testing.T, h transfer.Holder, name string, quantity uint32, hidden bool, locked bool, editable bool) {
	err := f.tp.CreateItem(f.mb)(99, h, name, "a "+name, quantity, hidden, locked, editable)
	if err != nil {
		t.Fatalf("Failed to seed item [%s]: %v", name, err)
	}
}

func (f *fixture) userQuantity(t *testing.T, id uint32, itemName string) uint32 {
	m, err := f.up.GetById(id)
	if err != nil {
		t.Fatalf("Failed to load user [%d]: %v", id, err)
	}
	i, ok := m.Items().Get(itemName)
	if !ok {
		return 0
	}
	return i.Quantity()
}

func (f *fixture) roomQuantity(t *testing.T, id uuid.UUID, itemName string) uint32 {
	m, err := f.rp.GetById(id)
	if err != nil {
		t.Fatalf("Failed to load room [%s]: %v", id, err)
	}
	i, ok := m.Items().Get(itemName)
	if !ok {
		return 0
	}
	return i.Quantity()
}

func TestGiveMovesWholeStack(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	f.seedUser(t, 2, "bob")
	f.seedItem(t, transfer.UserHolder(1), "torch", 1, false, false, false)

	s, err := f.tp.Give(f.mb)(1, 2, "torch", 1)
	if err != nil {
		t.Fatalf("Failed to give item: %v", err)
	}
	if s.ItemName() != "torch" || s.Quantity() != 1 {
		t.Fatalf("Unexpected summary [%s] x[%d].", s.ItemName(), s.Quantity())
	}

	if q := f.userQuantity(t, 1, "torch"); q != 0 {
		t.Fatalf("Source still has [%d] torches.", q)
	}
	if q := f.userQuantity(t, 2, "torch"); q != 1 {
		t.Fatalf("Recipient has [%d] torches, expected 1.", q)
	}
}

func TestGivePartialQuantityConservesTotal(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	f.seedUser(t, 2, "bob")
	f.seedItem(t, transfer.UserHolder(1), "coin", 5, false, false, false)

	_, err := f.tp.Give(f.mb)(1, 2, "coin", 2)
	if err != nil {
		t.Fatalf("Failed to give items: %v", err)
	}

	src := f.userQuantity(t, 1, "coin")
	dst := f.userQuantity(t, 2, "coin")
	if src != 3 || dst != 2 {
		t.Fatalf("Expected split 3/2, got %d/%d.", src, dst)
	}
	if src+dst != 5 {
		t.Fatalf("Quantity not conserved, total is %d.", src+dst)
	}
}

func TestGiveMergesIntoExistingStack(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	f.seedUser(t, 2, "bob")
	f.seedItem(t, transfer.UserHolder(1), "coin", 4, false, false, false)
	f.seedItem(t, transfer.UserHolder(2), "coin", 1, false, false, false)

	_, err := f.tp.Give(f.mb)(1, 2, "coin", 4)
	if err != nil {
		t.Fatalf("Failed to give items: %v", err)
	}

	if q := f.userQuantity(t, 2, "coin"); q != 5 {
		t.Fatalf("Recipient has [%d] coins, expected merged stack of 5.", q)
	}
	if q := f.userQuantity(t, 1, "coin"); q != 0 {
		t.Fatalf("Source still has [%d] coins.", q)
	}
}

func TestGiveToSelfRejected(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	f.seedItem(t, transfer.UserHolder(1), "torch", 1, false, false, false)

	_, err := f.tp.Give(f.mb)(1, 1, "torch", 1)
	if !errors.Is(err, transfer.ErrSameHolder) {
		t.Fatalf("Expected same holder rejection, got %v.", err)
	}
}

func TestZeroQuantityRejected(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	f.seedUser(t, 2, "bob")

	_, err := f.tp.Give(f.mb)(1, 2, "torch", 0)
	if !errors.Is(err, transfer.ErrInvalidQuantity) {
		t.Fatalf("Expected invalid quantity rejection, got %v.", err)
	}
}

func TestGiveMissingItem(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	f.seedUser(t, 2, "bob")

	_, err := f.tp.Give(f.mb)(1, 2, "torch", 1)
	var nfe transfer.ItemNotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("Expected not found error, got %v.", err)
	}
	if nfe.InRoom {
		t.Fatalf("Not found error blames the room for a user source.")
	}
}

func TestTakeMovesItemFromRoom(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	rm := f.seedRoom(t, "den")
	f.seedItem(t, transfer.RoomHolder(rm.Id()), "torch", 1, false, false, false)

	s, err := f.tp.Take(f.mb)(1, transfer.RoomHolder(rm.Id()), "torch", 1)
	if err != nil {
		t.Fatalf("Failed to take item: %v", err)
	}
	if s.RoomName() != "den" {
		t.Fatalf("Summary names room [%s], expected den.", s.RoomName())
	}

	if q := f.roomQuantity(t, rm.Id(), "torch"); q != 0 {
		t.Fatalf("Room still has [%d] torches.", q)
	}
	if q := f.userQuantity(t, 1, "torch"); q != 1 {
		t.Fatalf("User has [%d] torches, expected 1.", q)
	}

	items, ok := room.GetMirrorRegistry().Get(f.te, rm.Id())
	if !ok {
		t.Fatalf("Room mirror missing after take.")
	}
	if _, ok = items.Get("torch"); ok {
		t.Fatalf("Room mirror still lists the taken torch.")
	}
}

func TestTakeInsufficientReportsAvailable(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	rm := f.seedRoom(t, "orchard")
	f.seedItem(t, transfer.RoomHolder(rm.Id()), "apple", 3, false, false, false)

	_, err := f.tp.Take(f.mb)(1, transfer.RoomHolder(rm.Id()), "apple", 5)
	var iqe transfer.InsufficientQuantityError
	if !errors.As(err, &iqe) {
		t.Fatalf("Expected insufficient quantity error, got %v.", err)
	}
	if iqe.Available != 3 || iqe.Requested != 5 {
		t.Fatalf("Error reports %d available of %d requested, expected 3 of 5.", iqe.Available, iqe.Requested)
	}

	if q := f.roomQuantity(t, rm.Id(), "apple"); q != 3 {
		t.Fatalf("Rejected take changed room stock to [%d].", q)
	}
	if q := f.userQuantity(t, 1, "apple"); q != 0 {
		t.Fatalf("Rejected take granted the user [%d] apples.", q)
	}
}

func TestLockedItemCannotBeTaken(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	rm := f.seedRoom(t, "vault")
	f.seedItem(t, transfer.RoomHolder(rm.Id()), "key", 1, false, true, false)

	_, err := f.tp.Take(f.mb)(1, transfer.RoomHolder(rm.Id()), "key", 1)
	var le transfer.ItemLockedError
	if !errors.As(err, &le) {
		t.Fatalf("Expected locked error, got %v.", err)
	}
	if q := f.roomQuantity(t, rm.Id(), "key"); q != 1 {
		t.Fatalf("Locked item left the room.")
	}
}

func TestDropMovesItemToRoom(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	rm := f.seedRoom(t, "den")
	f.seedItem(t, transfer.UserHolder(1), "torch", 2, false, false, false)

	_, err := f.tp.Drop(f.mb)(1, transfer.RoomHolder(rm.Id()), "torch", 2)
	if err != nil {
		t.Fatalf("Failed to drop item: %v", err)
	}

	if q := f.userQuantity(t, 1, "torch"); q != 0 {
		t.Fatalf("User still has [%d] torches.", q)
	}
	if q := f.roomQuantity(t, rm.Id(), "torch"); q != 2 {
		t.Fatalf("Room has [%d] torches, expected 2.", q)
	}
}

func TestDropAttributesSurviveTransfer(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	rm := f.seedRoom(t, "den")
	f.seedItem(t, transfer.UserHolder(1), "lantern", 1, true, false, true)

	_, err := f.tp.Drop(f.mb)(1, transfer.RoomHolder(rm.Id()), "lantern", 1)
	if err != nil {
		t.Fatalf("Failed to drop item: %v", err)
	}

	m, err := f.rp.GetById(rm.Id())
	if err != nil {
		t.Fatalf("Failed to load room: %v", err)
	}
	i, ok := m.Items().Get("lantern")
	if !ok {
		t.Fatalf("Dropped item missing from room.")
	}
	if !i.Hidden() || !i.Editable() || i.Description() != "a lantern" {
		t.Fatalf("Dropped item lost its attributes.")
	}
}

func TestPersistenceFailureRollsBackAndRestoresMirror(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	rm := f.seedRoom(t, "den")
	f.seedItem(t, transfer.UserHolder(1), "torch", 1, false, false, false)

	err := f.db.Callback().Update().Before("gorm:update").Register("fail_updates", func(d *gorm.DB) {
		_ = d.AddError(errors.New("injected write failure"))
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}

	_, err = f.tp.Drop(f.mb)(1, transfer.RoomHolder(rm.Id()), "torch", 1)
	if err == nil {
		t.Fatalf("Drop succeeded despite failing writes.")
	}

	items, ok := room.GetMirrorRegistry().Get(f.te, rm.Id())
	if !ok {
		t.Fatalf("Room mirror missing after failed drop.")
	}
	if _, ok = items.Get("torch"); ok {
		t.Fatalf("Room mirror kept the compensated torch.")
	}

	if err = f.db.Callback().Update().Remove("fail_updates"); err != nil {
		t.Fatalf("Failed to remove callback: %v", err)
	}

	if q := f.userQuantity(t, 1, "torch"); q != 1 {
		t.Fatalf("Failed drop removed the user's torch, has [%d].", q)
	}
	if q := f.roomQuantity(t, rm.Id(), "torch"); q != 0 {
		t.Fatalf("Failed drop granted the room [%d] torches.", q)
	}

	if _, err = f.tp.Drop(f.mb)(1, transfer.RoomHolder(rm.Id()), "torch", 1); err != nil {
		t.Fatalf("Drop failed after write path recovered: %v", err)
	}
	if q := f.roomQuantity(t, rm.Id(), "torch"); q != 1 {
		t.Fatalf("Recovered drop left room with [%d] torches.", q)
	}
}

func TestConcurrentGivesSerializeOverSharedKeys(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	f.seedUser(t, 2, "bob")
	f.seedItem(t, transfer.UserHolder(1), "coin", 100, false, false, false)

	// Each goroutine gets its own processor; serialization must come from the
	// shared lock registry, not from sharing an instance.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := transfer.NewProcessor(f.l, f.ctx, f.db)
			if _, err := p.Transfer(transfer.UserHolder(1), transfer.UserHolder(2), "coin", 1); err != nil {
				t.Errorf("Concurrent give failed: %v", err)
			}
		}()
	}
	wg.Wait()

	src := f.userQuantity(t, 1, "coin")
	dst := f.userQuantity(t, 2, "coin")
	if src != 90 || dst != 10 {
		t.Fatalf("Expected 90/10 after concurrent gives, got %d/%d.", src, dst)
	}
	if src+dst != 100 {
		t.Fatalf("Quantity not conserved, total is %d.", src+dst)
	}
}

func TestConcurrentTakesObserveCommittedState(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	f.seedUser(t, 2, "bob")
	rm := f.seedRoom(t, "orchard")
	f.seedItem(t, transfer.RoomHolder(rm.Id()), "apple", 10, false, false, false)

	// Both takes contend on the room key. The second must reload the first's
	// committed state; a stale read would leave the room with 5 apples.
	var wg sync.WaitGroup
	for _, userId := range []uint32{1, 2} {
		wg.Add(1)
		go func(userId uint32) {
			defer wg.Done()
			p := transfer.NewProcessor(f.l, f.ctx, f.db)
			if _, err := p.Transfer(transfer.RoomHolder(rm.Id()), transfer.UserHolder(userId), "apple", 5); err != nil {
				t.Errorf("Concurrent take by user [%d] failed: %v", userId, err)
			}
		}(userId)
	}
	wg.Wait()

	if q := f.roomQuantity(t, rm.Id(), "apple"); q != 0 {
		t.Fatalf("Room has [%d] apples after both takes, expected 0.", q)
	}
	a := f.userQuantity(t, 1, "apple")
	b := f.userQuantity(t, 2, "apple")
	if a != 5 || b != 5 {
		t.Fatalf("Takers hold %d/%d apples, expected 5/5.", a, b)
	}

	items, ok := room.GetMirrorRegistry().Get(f.te, rm.Id())
	if !ok {
		t.Fatalf("Room mirror missing after takes.")
	}
	if _, ok = items.Get("apple"); ok {
		t.Fatalf("Room mirror still lists exhausted apples.")
	}
}

func TestConsumeRemovesStackAtZero(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	f.seedItem(t, transfer.UserHolder(1), "bread", 2, false, false, false)

	if _, err := f.tp.Consume(f.mb)(1, "bread", 1); err != nil {
		t.Fatalf("Failed to consume item: %v", err)
	}
	if q := f.userQuantity(t, 1, "bread"); q != 1 {
		t.Fatalf("User has [%d] bread, expected 1.", q)
	}

	if _, err := f.tp.Consume(f.mb)(1, "bread", 1); err != nil {
		t.Fatalf("Failed to consume last unit: %v", err)
	}

	m, err := f.up.GetById(1)
	if err != nil {
		t.Fatalf("Failed to load user: %v", err)
	}
	if _, ok := m.Items().Get("bread"); ok {
		t.Fatalf("Exhausted stack still present.")
	}
}

func TestConsumeMissingItem(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")

	_, err := f.tp.Consume(f.mb)(1, "bread", 1)
	var nfe transfer.ItemNotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("Expected not found error, got %v.", err)
	}
}

func TestCreateItemRejectsDuplicate(t *testing.T) {
	f := setup(t)
	f.seedUser(t, 1, "alice")
	f.seedItem(t, transfer.UserHolder(1), "torch", 1, false, false, false)

	err := f.tp.CreateItem(f.mb)(99, transfer.UserHolder(1), "torch", "another torch", 1, false, false, false)
	var ee transfer.ItemExistsError
	if !errors.As(err, &ee) {
		t.Fatalf("Expected exists error, got %v.", err)
	}
}

func TestUpdateItemRequiresEditable(t *testing.T) {
	f := setup(t)
	rm := f.seedRoom(t, "den")
	f.seedItem(t, transfer.RoomHolder(rm.Id()), "statue", 1, false, false, false)

	err := f.tp.UpdateItem(f.mb)(99, transfer.RoomHolder(rm.Id()), "statue", "chipped", false, false, false)
	var nee transfer.ItemNotEditableError
	if !errors.As(err, &nee) {
		t.Fatalf("Expected not editable error, got %v.", err)
	}
}

func TestUpdateItemRewritesAttributes(t *testing.T) {
	f := setup(t)
	rm := f.seedRoom(t, "den")
	f.seedItem(t, transfer.RoomHolder(rm.Id()), "sign", 1, false, false, true)

	err := f.tp.UpdateItem(f.mb)(99, transfer.RoomHolder(rm.Id()), "sign", "freshly painted", true, true, true)
	if err != nil {
		t.Fatalf("Failed to update item: %v", err)
	}

	m, err := f.rp.GetById(rm.Id())
	if err != nil {
		t.Fatalf("Failed to load room: %v", err)
	}
	i, ok := m.Items().Get("sign")
	if !ok {
		t.Fatalf("Updated item missing.")
	}
	if i.Description() != "freshly painted" || !i.Hidden() || !i.Locked() {
		t.Fatalf("Update did not apply the new attributes.")
	}
}

func TestDestroyItemIgnoresLockedFlag(t *testing.T) {
	f := setup(t)
	rm := f.seedRoom(t, "vault")
	f.seedItem(t, transfer.RoomHolder(rm.Id()), "key", 1, false, true, false)

	if err := f.tp.DestroyItem(f.mb)(99, transfer.RoomHolder(rm.Id()), "key"); err != nil {
		t.Fatalf("Failed to destroy locked item: %v", err)
	}
	if q := f.roomQuantity(t, rm.Id(), "key"); q != 0 {
		t.Fatalf("Destroyed item still present.")
	}
}
