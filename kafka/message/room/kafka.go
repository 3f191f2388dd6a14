package room

import "github.com/google/uuid"

const (
	EnvEventTopicStatus    = "EVENT_TOPIC_ROOM_STATUS"
	StatusEventTypeCreated = "CREATED"
	StatusEventTypeDeleted = "DELETED"
)

type StatusEvent[E any] struct {
	RoomId uuid.UUID `json:"roomId"`
	Type   string    `json:"type"`
	Body   E         `json:"body"`
}

type CreatedStatusEventBody struct {
	Name string `json:"name"`
}

type DeletedStatusEventBody struct {
}
