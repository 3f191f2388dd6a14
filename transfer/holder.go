package transfer

import (
	"github.com/google/uuid"
)

type HolderType byte

const (
	HolderTypeRoom HolderType = iota
	HolderTypeUser
)

// Holder tags one party of a mutation as a Room or a User.
type Holder struct {
	holderType HolderType
	roomId     uuid.UUID
	userId     uint32
}

func RoomHolder(roomId uuid.UUID) Holder {
	return Holder{holderType: HolderTypeRoom, roomId: roomId}
}

func UserHolder(userId uint32) Holder {
	return Holder{holderType: HolderTypeUser, userId: userId}
}

func (h Holder) Type() HolderType {
	return h.holderType
}

func (h Holder) IsRoom() bool {
	return h.holderType == HolderTypeRoom
}

func (h Holder) RoomId() uuid.UUID {
	return h.roomId
}

func (h Holder) UserId() uint32 {
	return h.userId
}

// Summary carries the confirmation facts of a completed mutation.
type Summary struct {
	itemName string
	quantity uint32
	roomName string
}

func (s Summary) ItemName() string {
	return s.itemName
}

func (s Summary) Quantity() uint32 {
	return s.quantity
}

// RoomName is the name of the room party, empty when no room was involved.
func (s Summary) RoomName() string {
	return s.roomName
}
