package repository

import (
	"pdam-be-svc/internal/models"

	"gorm.io/gorm"
)

// PengaduanRepository defines the interface for complaint data operations
type PengaduanRepository interface {
	Create(pengaduan *models.Pengaduan) error
	GetByID(id uint) (*models.Pengaduan, error)
	GetByUserID(userID uint) ([]*models.Pengaduan, error)
	GetAllWithUser() ([]*models.Pengaduan, error)
	CountUnread() (int64, error)
	MarkAllRead() (int64, error)
	Update(pengaduan *models.Pengaduan) error
	Delete(id uint) error
}

// pengaduanRepository implements PengaduanRepository
type pengaduanRepository struct {
	db *gorm.DB
}

// NewPengaduanRepository creates a new instance of PengaduanRepository
func NewPengaduanRepository(db *gorm.DB) PengaduanRepository {
	return &pengaduanRepository{
		db: db,
	}
}

// Create persists a new complaint
func (r *pengaduanRepository) Create(pengaduan *models.Pengaduan) error {
	return r.db.Create(pengaduan).Error
}

// GetByID retrieves a complaint by primary key
func (r *pengaduanRepository) GetByID(id uint) (*models.Pengaduan, error) {
	var pengaduan models.Pengaduan

	err := r.db.Where("id = ?", id).First(&pengaduan).Error
	if err != nil {
		return nil, err
	}

	return &pengaduan, nil
}

// GetByUserID retrieves a customer's complaints, newest first, hiding rows the
// customer removed from their own history
func (r *pengaduanRepository) GetByUserID(userID uint) ([]*models.Pengaduan, error) {
	var pengaduans []*models.Pengaduan

	err := r.db.
		Where("user_id = ? AND is_deleted_by_user = ?", userID, false).
		Order("created_at DESC").
		Find(&pengaduans).Error
	if err != nil {
		return nil, err
	}

	return pengaduans, nil
}

// GetAllWithUser retrieves every complaint including guest ones, newest first
func (r *pengaduanRepository) GetAllWithUser() ([]*models.Pengaduan, error) {
	var pengaduans []*models.Pengaduan

	err := r.db.Preload("User").Order("created_at DESC").Find(&pengaduans).Error
	if err != nil {
		return nil, err
	}

	return pengaduans, nil
}

// CountUnread counts complaints not yet read by a manager
func (r *pengaduanRepository) CountUnread() (int64, error) {
	var count int64

	err := r.db.Model(&models.Pengaduan{}).Where("is_read = ?", false).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// MarkAllRead flips every unread complaint to read and returns how many rows changed
func (r *pengaduanRepository) MarkAllRead() (int64, error) {
	result := r.db.Model(&models.Pengaduan{}).
		Where("is_read = ?", false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// Update persists changes to an existing complaint
func (r *pengaduanRepository) Update(pengaduan *models.Pengaduan) error {
	return r.db.Save(pengaduan).Error
}

// Delete permanently removes a complaint row
func (r *pengaduanRepository) Delete(id uint) error {
	return r.db.Delete(&models.Pengaduan{}, id).Error
}
