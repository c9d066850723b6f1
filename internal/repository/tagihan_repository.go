package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pdam-be-svc/internal/models"
	"pdam-be-svc/internal/models/response"
)

// ErrDuplicatePeriod is returned when a bill already exists for the same
// customer and period
var ErrDuplicatePeriod = errors.New("tagihan already exists for this period")

// TagihanRepository defines the interface for billing data operations
type TagihanRepository interface {
	CreateInPeriod(tagihan *models.Tagihan) error
	GetByID(id uint) (*models.Tagihan, error)
	GetByUserID(userID uint) ([]*models.Tagihan, error)
	GetVerificationQueue() ([]*response.VerifikasiListItem, error)
	GetAllWithUser() ([]*models.Tagihan, error)
	GetForExport(bulan *string, tahun *int, status *string) ([]*models.Tagihan, error)
	CountByStatus(status string) (int64, error)
	SumTotalByStatus(status string) (int64, error)
	Update(tagihan *models.Tagihan) error
}

// tagihanRepository implements TagihanRepository
type tagihanRepository struct {
	db *gorm.DB
}

// NewTagihanRepository creates a new instance of TagihanRepository
func NewTagihanRepository(db *gorm.DB) TagihanRepository {
	return &tagihanRepository{
		db: db,
	}
}

// CreateInPeriod inserts a bill after checking no bill exists for the same
// (user, bulan, tahun). The check and the insert run in one transaction, and
// the composite unique index backs the check against concurrent inserts.
func (r *tagihanRepository) CreateInPeriod(tagihan *models.Tagihan) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tagihan{}).
			Where("user_id = ? AND bulan = ? AND tahun = ?", tagihan.UserID, tagihan.Bulan, tagihan.Tahun).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing tagihan: %w", err)
		}
		if count > 0 {
			return ErrDuplicatePeriod
		}

		if err := tx.Create(tagihan).Error; err != nil {
			// A concurrent insert that slipped past the check trips the
			// unique index instead
			return ErrDuplicatePeriod
		}

		return nil
	})
}

// GetByID retrieves a tagihan by primary key
func (r *tagihanRepository) GetByID(id uint) (*models.Tagihan, error) {
	var tagihan models.Tagihan

	err := r.db.Where("id = ?", id).First(&tagihan).Error
	if err != nil {
		return nil, err
	}

	return &tagihan, nil
}

// GetByUserID retrieves all bills for a customer, most recent first
func (r *tagihanRepository) GetByUserID(userID uint) ([]*models.Tagihan, error) {
	var tagihans []*models.Tagihan

	err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&tagihans).Error
	if err != nil {
		return nil, err
	}

	return tagihans, nil
}

// GetVerificationQueue retrieves all bills awaiting verification joined with
// the customer name
func (r *tagihanRepository) GetVerificationQueue() ([]*response.VerifikasiListItem, error) {
	var items []*response.VerifikasiListItem

	query := `
		SELECT t.id, u.name AS user_name, t.bulan, t.tahun, t.total_bayar, t.bukti_bayar
		FROM tagihans t
		JOIN users u ON u.id = t.user_id
		WHERE t.status_bayar = ?
		ORDER BY t.id
	`

	err := r.db.Raw(query, models.StatusMenungguVerifikasi).Scan(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// GetAllWithUser retrieves every bill with its owning customer, most recent first
func (r *tagihanRepository) GetAllWithUser() ([]*models.Tagihan, error) {
	var tagihans []*models.Tagihan

	err := r.db.Preload("User").Order("id DESC").Find(&tagihans).Error
	if err != nil {
		return nil, err
	}

	return tagihans, nil
}

// GetForExport retrieves bills with optional period and status filters
func (r *tagihanRepository) GetForExport(bulan *string, tahun *int, status *string) ([]*models.Tagihan, error) {
	var tagihans []*models.Tagihan

	query := r.db.Preload("User")
	if bulan != nil {
		query = query.Where("bulan = ?", *bulan)
	}
	if tahun != nil {
		query = query.Where("tahun = ?", *tahun)
	}
	if status != nil {
		query = query.Where("status_bayar = ?", *status)
	}

	err := query.Order("tahun DESC, id DESC").Find(&tagihans).Error
	if err != nil {
		return nil, err
	}

	return tagihans, nil
}

// CountByStatus counts bills in the given payment status
func (r *tagihanRepository) CountByStatus(status string) (int64, error) {
	var count int64

	err := r.db.Model(&models.Tagihan{}).Where("status_bayar = ?", status).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// SumTotalByStatus sums total_bayar over bills in the given payment status
func (r *tagihanRepository) SumTotalByStatus(status string) (int64, error) {
	var sum int64

	err := r.db.Model(&models.Tagihan{}).
		Where("status_bayar = ?", status).
		Select("COALESCE(SUM(total_bayar), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}

// Update persists changes to an existing tagihan
func (r *tagihanRepository) Update(tagihan *models.Tagihan) error {
	return r.db.Save(tagihan).Error
}
