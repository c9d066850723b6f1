package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pdam-be-svc/internal/config"
	"pdam-be-svc/internal/models"
)

// Database wraps the gorm DB connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a PostgreSQL connection using the given configuration
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	return &Database{DB: db}, nil
}

// AutoMigrate runs schema migrations for all models
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.User{},
		&models.Tagihan{},
		&models.Pengaduan{},
		&models.LogScheduller{},
	)
}

// Close closes the underlying database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
