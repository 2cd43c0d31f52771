package config

import (
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDatabase opens the postgres connection and keeps it in DB.
func ConnectDatabase(settings *Settings, logger *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(settings.DatabaseURL), &gorm.Config{
		Logger: gormLogger.New(
			log.New(logger.WithField("component", "gorm").WriterLevel(logrus.WarnLevel), "", 0),
			gormLogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.WithField("component", "database").Info("database connected")
	DB = db
	return db, nil
}
