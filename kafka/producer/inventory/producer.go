package inventory

import (
	"atlas-rooms/kafka/message/inventory"

	"github.com/Chronicle20/atlas-kafka/producer"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

func GivenEventStatusProvider(userId uint32, recipientId uint32, itemName string, quantity uint32) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(userId))
	value := &inventory.StatusEvent[inventory.GivenStatusEventBody]{
		UserId: userId,
		Type:   inventory.StatusEventTypeGiven,
		Body: inventory.GivenStatusEventBody{
			RecipientId: recipientId,
			ItemName:    itemName,
			Quantity:    quantity,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func TakenEventStatusProvider(userId uint32, roomId uuid.UUID, roomName string, itemName string, quantity uint32) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(userId))
	value := &inventory.StatusEvent[inventory.TakenStatusEventBody]{
		UserId: userId,
		Type:   inventory.StatusEventTypeTaken,
		Body: inventory.TakenStatusEventBody{
			RoomId:   roomId,
			RoomName: roomName,
			ItemName: itemName,
			Quantity: quantity,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func DroppedEventStatusProvider(userId uint32, roomId uuid.UUID, roomName string, itemName string, quantity uint32) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(userId))
	value := &inventory.StatusEvent[inventory.DroppedStatusEventBody]{
		UserId: userId,
		Type:   inventory.StatusEventTypeDropped,
		Body: inventory.DroppedStatusEventBody{
			RoomId:   roomId,
			RoomName: roomName,
			ItemName: itemName,
			Quantity: quantity,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func ConsumedEventStatusProvider(userId uint32, itemName string, quantity uint32) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(userId))
	value := &inventory.StatusEvent[inventory.ConsumedStatusEventBody]{
		UserId: userId,
		Type:   inventory.StatusEventTypeConsumed,
		Body: inventory.ConsumedStatusEventBody{
			ItemName: itemName,
			Quantity: quantity,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func CreatedEventStatusProvider(userId uint32, holder inventory.HolderBody, itemName string, quantity uint32) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(userId))
	value := &inventory.StatusEvent[inventory.CreatedStatusEventBody]{
		UserId: userId,
		Type:   inventory.StatusEventTypeCreated,
		Body: inventory.CreatedStatusEventBody{
			HolderBody: holder,
			ItemName:   itemName,
			Quantity:   quantity,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func UpdatedEventStatusProvider(userId uint32, holder inventory.HolderBody, itemName string) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(userId))
	value := &inventory.StatusEvent[inventory.UpdatedStatusEventBody]{
		UserId: userId,
		Type:   inventory.StatusEventTypeUpdated,
		Body: inventory.UpdatedStatusEventBody{
			HolderBody: holder,
			ItemName:   itemName,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func DestroyedEventStatusProvider(userId uint32, holder inventory.HolderBody, itemName string) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(userId))
	value := &inventory.StatusEvent[inventory.DestroyedStatusEventBody]{
		UserId: userId,
		Type:   inventory.StatusEventTypeDestroyed,
		Body: inventory.DestroyedStatusEventBody{
			HolderBody: holder,
			ItemName:   itemName,
		},
	}
	return producer.SingleMessageProvider(key, value)
}

func ErrorEventStatusProvider(userId uint32, commandType string, err error) model.Provider[[]kafka.Message] {
	key := producer.CreateKey(int(userId))
	value := &inventory.StatusEvent[inventory.ErrorStatusEventBody]{
		UserId: userId,
		Type:   inventory.StatusEventTypeError,
		Body: inventory.ErrorStatusEventBody{
			CommandType: commandType,
			Error:       err.Error(),
		},
	}
	return producer.SingleMessageProvider(key, value)
}
