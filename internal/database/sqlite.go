package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codyseavey/tcg-tracker/collection/internal/models"
)

var DB *gorm.DB

// Initialize opens the database at dbPath, migrates the schema and stores the
// handle for GetDB.
func Initialize(dbPath string, logLevel logger.LogLevel, log *zap.Logger) error {
	db, err := Open(dbPath, logLevel)
	if err != nil {
		return err
	}
	log.Info("database connected", zap.String("path", dbPath))

	if err := Migrate(db, log); err != nil {
		return err
	}
	log.Info("database migration completed")

	DB = db
	return nil
}

// Open connects to a sqlite database without migrating it.
func Open(dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// OpenMemory returns a migrated in-memory database pinned to a single
// connection, so every query sees the same data.
func OpenMemory() (*gorm.DB, error) {
	db, err := Open(":memory:", logger.Silent)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db, zap.NewNop()); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema and runs data migrations.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(&models.Set{}, &models.Card{}, &models.CollectionItem{}, &models.ImportRun{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return RunMigrations(db, log)
}

func GetDB() *gorm.DB {
	return DB
}

// ParseLogLevel maps a config string to a gorm log level.
func ParseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
