package inventory

import "github.com/google/uuid"

const (
	EnvCommandTopic    = "COMMAND_TOPIC_INVENTORY"
	CommandGive        = "GIVE"
	CommandTake        = "TAKE"
	CommandDrop        = "DROP"
	CommandConsume     = "CONSUME"
	CommandCreateItem  = "CREATE_ITEM"
	CommandUpdateItem  = "UPDATE_ITEM"
	CommandDestroyItem = "DESTROY_ITEM"
)

// Command is the envelope for all inventory verbs. UserId is the acting
// user; the tenant rides in the message headers.
type Command[E any] struct {
	UserId uint32 `json:"userId"`
	Type   string `json:"type"`
	Body   E      `json:"body"`
}

type GiveCommandBody struct {
	RecipientId uint32 `json:"recipientId"`
	ItemName    string `json:"itemName"`
	Quantity    uint32 `json:"quantity"`
}

type TakeCommandBody struct {
	RoomId   uuid.UUID `json:"roomId"`
	ItemName string    `json:"itemName"`
	Quantity uint32    `json:"quantity"`
}

type DropCommandBody struct {
	RoomId   uuid.UUID `json:"roomId"`
	ItemName string    `json:"itemName"`
	Quantity uint32    `json:"quantity"`
}

type ConsumeCommandBody struct {
	ItemName string `json:"itemName"`
	Quantity uint32 `json:"quantity"`
}

type HolderBody struct {
	HolderKind   string    `json:"holderKind"`
	RoomId       uuid.UUID `json:"roomId"`
	TargetUserId uint32    `json:"targetUserId"`
}

type CreateItemCommandBody struct {
	HolderBody
	ItemName    string `json:"itemName"`
	Description string `json:"description"`
	Quantity    uint32 `json:"quantity"`
	Hidden      bool   `json:"hidden"`
	Locked      bool   `json:"locked"`
	Editable    bool   `json:"editable"`
}

type UpdateItemCommandBody struct {
	HolderBody
	ItemName    string `json:"itemName"`
	Description string `json:"description"`
	Hidden      bool   `json:"hidden"`
	Locked      bool   `json:"locked"`
	Editable    bool   `json:"editable"`
}

type DestroyItemCommandBody struct {
	HolderBody
	ItemName string `json:"itemName"`
}

const (
	EnvEventTopicStatus      = "EVENT_TOPIC_INVENTORY_STATUS"
	StatusEventTypeGiven     = "GIVEN"
	StatusEventTypeTaken     = "TAKEN"
	StatusEventTypeDropped   = "DROPPED"
	StatusEventTypeConsumed  = "CONSUMED"
	StatusEventTypeCreated   = "CREATED"
	StatusEventTypeUpdated   = "UPDATED"
	StatusEventTypeDestroyed = "DESTROYED"
	StatusEventTypeError     = "ERROR"
)

// StatusEvent carries the confirmation facts of a completed (or failed)
// action for the messaging collaborator to format and deliver.
type StatusEvent[E any] struct {
	UserId uint32 `json:"userId"`
	Type   string `json:"type"`
	Body   E      `json:"body"`
}

type GivenStatusEventBody struct {
	RecipientId uint32 `json:"recipientId"`
	ItemName    string `json:"itemName"`
	Quantity    uint32 `json:"quantity"`
}

type TakenStatusEventBody struct {
	RoomId   uuid.UUID `json:"roomId"`
	RoomName string    `json:"roomName"`
	ItemName string    `json:"itemName"`
	Quantity uint32    `json:"quantity"`
}

type DroppedStatusEventBody struct {
	RoomId   uuid.UUID `json:"roomId"`
	RoomName string    `json:"roomName"`
	ItemName string    `json:"itemName"`
	Quantity uint32    `json:"quantity"`
}

type ConsumedStatusEventBody struct {
	ItemName string `json:"itemName"`
	Quantity uint32 `json:"quantity"`
}

type CreatedStatusEventBody struct {
	HolderBody
	ItemName string `json:"itemName"`
	Quantity uint32 `json:"quantity"`
}

type UpdatedStatusEventBody struct {
	HolderBody
	ItemName string `json:"itemName"`
}

type DestroyedStatusEventBody struct {
	HolderBody
	ItemName string `json:"itemName"`
}

type ErrorStatusEventBody struct {
	CommandType string `json:"commandType"`
	Error       string `json:"error"`
}
