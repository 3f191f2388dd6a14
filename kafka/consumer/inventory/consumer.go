package inventory

import (
	"context"

	consumer2 "atlas-rooms/kafka/consumer"
	inventory2 "atlas-rooms/kafka/message/inventory"
	"atlas-rooms/transfer"

	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-kafka/handler"
	"github.com/Chronicle20/atlas-kafka/message"
	"github.com/Chronicle20/atlas-kafka/topic"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func InitConsumers(l logrus.FieldLogger) func(func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(consumerGroupId string) {
	return func(rf func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(consumerGroupId string) {
		return func(consumerGroupId string) {
			rf(consumer2.NewConfig(l)("inventory_command")(inventory2.EnvCommandTopic)(consumerGroupId), consumer.SetHeaderParsers(consumer.SpanHeaderParser, consumer.TenantHeaderParser))
		}
	}
}

func InitHandlers(l logrus.FieldLogger) func(db *gorm.DB) func(rf func(topic string, handler handler.Handler) (string, error)) {
	return func(db *gorm.DB) func(rf func(topic string, handler handler.Handler) (string, error)) {
		return func(rf func(topic string, handler handler.Handler) (string, error)) {
			var t string
			t, _ = topic.EnvProvider(l)(inventory2.EnvCommandTopic)()
			_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleGiveCommand(db))))
			_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleTakeCommand(db))))
			_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleDropCommand(db))))
			_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleConsumeCommand(db))))
			_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleCreateItemCommand(db))))
			_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleUpdateItemCommand(db))))
			_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleDestroyItemCommand(db))))
		}
	}
}

func holderFromBody(b inventory2.HolderBody) transfer.Holder {
	if b.HolderKind == "ROOM" {
		return transfer.RoomHolder(b.RoomId)
	}
	return transfer.UserHolder(b.TargetUserId)
}

func handleGiveCommand(db *gorm.DB) message.Handler[inventory2.Command[inventory2.GiveCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.GiveCommandBody]) {
		if c.Type != inventory2.CommandGive {
			return
		}
		_, _ = transfer.NewProcessor(l, ctx, db).GiveAndEmit(c.UserId, c.Body.RecipientId, c.Body.ItemName, c.Body.Quantity)
	}
}

func handleTakeCommand(db *gorm.DB) message.Handler[inventory2.Command[inventory2.TakeCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.TakeCommandBody]) {
		if c.Type != inventory2.CommandTake {
			return
		}
		_, _ = transfer.NewProcessor(l, ctx, db).TakeAndEmit(c.UserId, transfer.RoomHolder(c.Body.RoomId), c.Body.ItemName, c.Body.Quantity)
	}
}

func handleDropCommand(db *gorm.DB) message.Handler[inventory2.Command[inventory2.DropCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.DropCommandBody]) {
		if c.Type != inventory2.CommandDrop {
			return
		}
		_, _ = transfer.NewProcessor(l, ctx, db).DropAndEmit(c.UserId, transfer.RoomHolder(c.Body.RoomId), c.Body.ItemName, c.Body.Quantity)
	}
}

func handleConsumeCommand(db *gorm.DB) message.Handler[inventory2.Command[inventory2.ConsumeCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.ConsumeCommandBody]) {
		if c.Type != inventory2.CommandConsume {
			return
		}
		_, _ = transfer.NewProcessor(l, ctx, db).ConsumeAndEmit(c.UserId, c.Body.ItemName, c.Body.Quantity)
	}
}

func handleCreateItemCommand(db *gorm.DB) message.Handler[inventory2.Command[inventory2.CreateItemCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.CreateItemCommandBody]) {
		if c.Type != inventory2.CommandCreateItem {
			return
		}
		_ = transfer.NewProcessor(l, ctx, db).CreateItemAndEmit(c.UserId, holderFromBody(c.Body.HolderBody), c.Body.ItemName, c.Body.Description, c.Body.Quantity, c.Body.Hidden, c.Body.Locked, c.Body.Editable)
	}
}

func handleUpdateItemCommand(db *gorm.DB) message.Handler[inventory2.Command[inventory2.UpdateItemCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.UpdateItemCommandBody]) {
		if c.Type != inventory2.CommandUpdateItem {
			return
		}
		_ = transfer.NewProcessor(l, ctx, db).UpdateItemAndEmit(c.UserId, holderFromBody(c.Body.HolderBody), c.Body.ItemName, c.Body.Description, c.Body.Hidden, c.Body.Locked, c.Body.Editable)
	}
}

func handleDestroyItemCommand(db *gorm.DB) message.Handler[inventory2.Command[inventory2.DestroyItemCommandBody]] {
	return func(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.DestroyItemCommandBody]) {
		if c.Type != inventory2.CommandDestroyItem {
			return
		}
		_ = transfer.NewProcessor(l, ctx, db).DestroyItemAndEmit(c.UserId, holderFromBody(c.Body.HolderBody), c.Body.ItemName)
	}
}
