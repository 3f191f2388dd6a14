package main

import (
	"os"

	"atlas-rooms/database"
	inventory2 "atlas-rooms/kafka/consumer/inventory"
	"atlas-rooms/logger"
	"atlas-rooms/room"
	"atlas-rooms/service"
	"atlas-rooms/tracing"
	"atlas-rooms/user"

	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-rest/server"
	"github.com/sirupsen/logrus"
)

const serviceName = "atlas-rooms"
const consumerGroupId = "Room Service"

type Server struct {
	baseUrl string
	prefix  string
}

func (s Server) GetBaseURL() string {
	return s.baseUrl
}

func (s Server) GetPrefix() string {
	return s.prefix
}

func GetServer() Server {
	return Server{
		baseUrl: "",
		prefix:  "/api/",
	}
}

func main() {
	l := logger.CreateLogger(serviceName)
	l.Infoln("Starting main service.")

	tdm := service.GetTeardownManager()

	tc, err := tracing.InitTracer(l)(serviceName)
	if err != nil {
		l.WithError(err).Fatal("Unable to initialize tracer.")
	}

	db := database.Connect(l, database.SetMigrations(room.Migration, user.Migration))

	cmf := consumer.GetManager().AddConsumer(l, tdm.Context(), tdm.WaitGroup())
	inventory2.InitConsumers(l)(cmf)(consumerGroupId)
	inventory2.InitHandlers(l)(db)(consumer.GetManager().RegisterHandler)

	server.New(l.(*logrus.Entry).Logger).
		WithContext(tdm.Context()).
		WithWaitGroup(tdm.WaitGroup()).
		SetBasePath(GetServer().GetPrefix()).
		SetPort(os.Getenv("REST_PORT")).
		AddRouteInitializer(room.InitResource(GetServer())(db)).
		AddRouteInitializer(user.InitResource(GetServer())(db)).
		Run()

	tdm.TeardownFunc(tracing.Teardown(l)(tc))

	tdm.Wait()
	l.Infoln("Service shutdown.")
}
