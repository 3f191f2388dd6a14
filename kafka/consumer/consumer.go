package consumer

import (
	"os"

	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-kafka/topic"
	"github.com/sirupsen/logrus"
)

func NewConfig(l logrus.FieldLogger) func(name string) func(token string) func(groupId string) consumer.Config {
	return func(name string) func(token string) func(groupId string) consumer.Config {
		return func(token string) func(groupId string) consumer.Config {
			return func(groupId string) consumer.Config {
				t, _ := topic.EnvProvider(l)(token)()
				return consumer.NewConfig([]string{os.Getenv("BOOTSTRAP_SERVERS")}, name, t, groupId)
			}
		}
	}
}
