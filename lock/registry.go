package lock

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Key identifies one lockable resource. Keys are tenant qualified so two
// worlds hosted by the same process never contend.
type Key string

func RoomKey(tenantId uuid.UUID, roomId uuid.UUID) Key {
	return Key(fmt.Sprintf("room:%s:%s", tenantId, roomId))
}

func UserKey(tenantId uuid.UUID, userId uint32) Key {
	return Key(fmt.Sprintf("user:%s:%d", tenantId, userId))
}

// Request is a compound hold over at most one room key and any number of
// user keys. It is granted only when every requested key is free at once.
type Request struct {
	roomKey  *Key
	userKeys []Key
}

func NewRequest(roomKey *Key, userKeys ...Key) Request {
	return Request{roomKey: roomKey, userKeys: userKeys}
}

func ForRoom(roomKey Key) Request {
	return Request{roomKey: &roomKey}
}

func ForUser(userKey Key) Request {
	return Request{userKeys: []Key{userKey}}
}

func ForUsers(userKeys ...Key) Request {
	return Request{userKeys: userKeys}
}

func ForRoomAndUser(roomKey Key, userKey Key) Request {
	return Request{roomKey: &roomKey, userKeys: []Key{userKey}}
}

type Registry struct {
	mu    sync.Mutex
	cond  *sync.Cond
	rooms map[Key]bool
	users map[Key]bool
}

var registry *Registry
var once sync.Once

func GetRegistry() *Registry {
	once.Do(func() {
		registry = NewRegistry()
	})
	return registry
}

func NewRegistry() *Registry {
	r := &Registry{
		rooms: make(map[Key]bool),
		users: make(map[Key]bool),
	}
	r.cond = sync.NewCond(&r.mu)
	return r
}

func (r *Registry) available(req Request) bool {
	if req.roomKey != nil && r.rooms[*req.roomKey] {
		return false
	}
	for _, k := range req.userKeys {
		if r.users[k] {
			return false
		}
	}
	return true
}

// Acquire blocks until every key in the request is simultaneously free, then
// marks them all held. A request is never partially granted. There is no
// reentrancy: acquiring a key the caller already holds deadlocks against
// itself, and there is no timeout. Callers must guarantee a matching Release
// on every exit path.
func (r *Registry) Acquire(req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for !r.available(req) {
		r.cond.Wait()
	}

	if req.roomKey != nil {
		r.rooms[*req.roomKey] = true
	}
	for _, k := range req.userKeys {
		r.users[k] = true
	}
}

// Release unconditionally frees the keys in the request and wakes all
// waiters so pending compound requests can re-evaluate. Releasing a key that
// was not held is a no-op; hold ownership is not validated.
func (r *Registry) Release(req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.roomKey != nil {
		delete(r.rooms, *req.roomKey)
	}
	for _, k := range req.userKeys {
		delete(r.users, k)
	}

	r.cond.Broadcast()
}

// Held reports whether the given room or user key is currently held.
func (r *Registry) Held(k Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms[k] || r.users[k]
}
