package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/config"
	"github.com/ahmetcoskunkizilkaya/community-moderation/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	DB *gorm.DB
	// ReadDB serves lag-tolerant reads. It is DB itself when no replica is configured.
	ReadDB *gorm.DB
)

func Connect(cfg *config.Config) error {
	var err error
	DB, err = open(cfg.DSN(), 50, 25)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	ReadDB = DB

	if cfg.DBReadDSN != "" {
		ReadDB, err = open(cfg.DBReadDSN, 20, 10)
		if err != nil {
			return fmt.Errorf("failed to connect to read replica: %w", err)
		}
		slog.Info("read replica connected")
	}

	slog.Info("database connected")
	return nil
}

func open(dsn string, maxOpen, maxIdle int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// Migrate runs AutoMigrate for every model the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserStatusChange{},
		&models.Topic{},
		&models.Post{},
		&models.Message{},
		&models.Report{},
		&models.ModerationAction{},
		&models.SystemLog{},
	)
}

func Ping() error {
	return ping(DB)
}

func PingRead() error {
	return ping(ReadDB)
}

func ping(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("not connected")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	for _, db := range []*gorm.DB{DB, ReadDB} {
		if db == nil {
			continue
		}
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", "error", err)
			}
		}
		if ReadDB == DB {
			break
		}
	}
}
