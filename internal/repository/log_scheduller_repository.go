package repository

import (
	"pdam-be-svc/internal/models"

	"gorm.io/gorm"
)

// LogSchedullerRepository defines the interface for scheduler log operations
type LogSchedullerRepository interface {
	Create(entry *models.LogScheduller) error
}

// logSchedullerRepository implements LogSchedullerRepository
type logSchedullerRepository struct {
	db *gorm.DB
}

// NewLogSchedullerRepository creates a new instance of LogSchedullerRepository
func NewLogSchedullerRepository(db *gorm.DB) LogSchedullerRepository {
	return &logSchedullerRepository{
		db: db,
	}
}

// Create persists a scheduler log entry
func (r *logSchedullerRepository) Create(entry *models.LogScheduller) error {
	return r.db.Create(entry).Error
}
