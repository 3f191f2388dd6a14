package room

import (
	"encoding/binary"

	"atlas-rooms/kafka/message/room"

	"github.com/Chronicle20/atlas-kafka/producer"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

func roomKey(id uuid.UUID) []byte {
	return producer.CreateKey(int(binary.BigEndian.Uint32(id[:4])))
}

func CreatedEventStatusProvider(id uuid.UUID, name string) model.Provider[[]kafka.Message] {
	value := &room.StatusEvent[room.CreatedStatusEventBody]{
		RoomId: id,
		Type:   room.StatusEventTypeCreated,
		Body: room.CreatedStatusEventBody{
			Name: name,
		},
	}
	return producer.SingleMessageProvider(roomKey(id), value)
}

func DeletedEventStatusProvider(id uuid.UUID) model.Provider[[]kafka.Message] {
	value := &room.StatusEvent[room.DeletedStatusEventBody]{
		RoomId: id,
		Type:   room.StatusEventTypeDeleted,
		Body:   room.DeletedStatusEventBody{},
	}
	return producer.SingleMessageProvider(roomKey(id), value)
}
