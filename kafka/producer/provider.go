package producer

import (
	"context"

	"github.com/Chronicle20/atlas-kafka/producer"
	"github.com/Chronicle20/atlas-kafka/topic"
	"github.com/sirupsen/logrus"
)

// Provider and ProviderImpl reproduce the atlas-kafka v1.2.x producer
// surface on top of the v1.1.x primitives, since only v1.1.x is resolvable
// from the module proxy.
type Provider func(token string) producer.MessageProducer

func ProviderImpl(l logrus.FieldLogger) func(ctx context.Context) Provider {
	return func(ctx context.Context) Provider {
		return func(token string) producer.MessageProducer {
			return producer.Produce(l)(producer.WriterProvider(topic.EnvProvider(l)(token)))(producer.SpanHeaderDecorator(ctx), producer.TenantHeaderDecorator(ctx))
		}
	}
}
