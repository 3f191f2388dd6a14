package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

func CreateLogger(serviceName string) logrus.FieldLogger {
	l := logrus.StandardLogger()
	l.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	return l.WithField("originator", serviceName)
}
