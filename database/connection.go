package database

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Configurator func(c *configuration)

type configuration struct {
	migrations []func(db *gorm.DB) error
}

func SetMigrations(migrations ...func(db *gorm.DB) error) Configurator {
	return func(c *configuration) {
		c.migrations = migrations
	}
}

// Connect opens the service database, retrying until the store is reachable,
// and applies registered migrations.
func Connect(l logrus.FieldLogger, configurators ...Configurator) *gorm.DB {
	c := &configuration{}
	for _, configurator := range configurators {
		configurator(c)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))

	var db *gorm.DB
	var err error
	for attempt := 0; attempt < 10; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		l.WithError(err).Warnf("Unable to connect to database. Retrying...")
		time.Sleep(time.Second * time.Duration(attempt+1))
	}
	if err != nil {
		l.WithError(err).Fatalf("Unable to connect to database.")
	}

	for _, migration := range c.migrations {
		if err = migration(db); err != nil {
			l.WithError(err).Fatalf("Unable to migrate database.")
		}
	}
	return db
}
