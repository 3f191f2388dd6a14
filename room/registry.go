package room

import (
	"fmt"
	"sync"

	"atlas-rooms/inventory"

	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
)

// MirrorRegistry holds the in-memory copy of every loaded room inventory.
// Mirrors are published copy-on-write: a published inventory is never
// mutated in place, so readers may hold one without coordination. Publishing
// a new mirror for a room is reserved for the action currently holding that
// room's lock key.
type MirrorRegistry struct {
	lock    sync.RWMutex
	mirrors map[string]inventory.Model
}

var mirrorRegistry *MirrorRegistry
var mirrorOnce sync.Once

func GetMirrorRegistry() *MirrorRegistry {
	mirrorOnce.Do(func() {
		mirrorRegistry = &MirrorRegistry{
			mirrors: make(map[string]inventory.Model),
		}
	})
	return mirrorRegistry
}

func mirrorKey(t tenant.Model, roomId uuid.UUID) string {
	return fmt.Sprintf("%s:%s", t.Id(), roomId)
}

func (r *MirrorRegistry) Get(t tenant.Model, roomId uuid.UUID) (inventory.Model, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	m, ok := r.mirrors[mirrorKey(t, roomId)]
	return m, ok
}

func (r *MirrorRegistry) Put(t tenant.Model, roomId uuid.UUID, items inventory.Model) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.mirrors[mirrorKey(t, roomId)] = items
}

func (r *MirrorRegistry) Remove(t tenant.Model, roomId uuid.UUID) {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.mirrors, mirrorKey(t, roomId))
}
