package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pdam-be-svc/internal/models"
	"pdam-be-svc/internal/models/response"
	"pdam-be-svc/internal/repository"
	"pdam-be-svc/pkg/logger"
)

// CreateTagihanInput carries the fields the kasir submits for a new bill
type CreateTagihanInput struct {
	UserID     uint
	Bulan      string
	Tahun      int
	MeterAwal  int
	MeterAkhir int
}

// Verification actions
const (
	AksiTerima = "TERIMA"
	AksiTolak  = "TOLAK"
)

// BillingService defines the interface for billing business operations
type BillingService interface {
	GetPelangganUsers(page, limit int) ([]*models.User, int64, error)
	CreateTagihan(input CreateTagihanInput) (*models.Tagihan, error)
	GetTagihanByUser(userID uint) ([]*models.Tagihan, error)
	SubmitBuktiBayar(tagihanID, userID uint, filename string, content []byte) (*models.Tagihan, error)
	GetVerificationQueue() ([]*response.VerifikasiListItem, error)
	DecideVerification(tagihanID uint, aksi string) (*models.Tagihan, error)
}

// billingService implements BillingService
type billingService struct {
	tagihanRepo   repository.TagihanRepository
	userRepo      repository.UserRepository
	tarifPerMeter int64
	uploadDir     string
	logger        *logger.Logger
}

// NewBillingService creates a new instance of BillingService
func NewBillingService(
	tagihanRepo repository.TagihanRepository,
	userRepo repository.UserRepository,
	tarifPerMeter int64,
	uploadDir string,
	logger *logger.Logger,
) BillingService {
	return &billingService{
		tagihanRepo:   tagihanRepo,
		userRepo:      userRepo,
		tarifPerMeter: tarifPerMeter,
		uploadDir:     uploadDir,
		logger:        logger,
	}
}

// GetPelangganUsers returns a page of customers plus the total customer count
func (s *billingService) GetPelangganUsers(page, limit int) ([]*models.User, int64, error) {
	offset := (page - 1) * limit

	users, err := s.userRepo.GetPelangganUsers(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get pelanggan users: %w", err)
	}

	total, err := s.userRepo.CountPelanggan()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pelanggan users: %w", err)
	}

	return users, total, nil
}

// CreateTagihan creates a monthly bill for a customer. The one-bill-per-period
// rule is enforced atomically by the repository.
func (s *billingService) CreateTagihan(input CreateTagihanInput) (*models.Tagihan, error) {
	if input.MeterAkhir < input.MeterAwal {
		s.logger.WithFields(map[string]interface{}{
			"user_id":     input.UserID,
			"meter_awal":  input.MeterAwal,
			"meter_akhir": input.MeterAkhir,
		}).Warn("Rejected tagihan with negative usage")
		return nil, ErrInvalidMeterReading
	}

	total := int64(input.MeterAkhir-input.MeterAwal) * s.tarifPerMeter

	tagihan := &models.Tagihan{
		UserID:      input.UserID,
		Bulan:       input.Bulan,
		Tahun:       input.Tahun,
		MeterAwal:   input.MeterAwal,
		MeterAkhir:  input.MeterAkhir,
		TotalBayar:  total,
		StatusBayar: models.StatusBelumBayar,
	}

	if err := s.tagihanRepo.CreateInPeriod(tagihan); err != nil {
		if errors.Is(err, repository.ErrDuplicatePeriod) {
			return nil, ErrDuplicateTagihan
		}
		return nil, fmt.Errorf("failed to create tagihan: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"tagihan_id":  tagihan.ID,
		"user_id":     tagihan.UserID,
		"bulan":       tagihan.Bulan,
		"tahun":       tagihan.Tahun,
		"total_bayar": tagihan.TotalBayar,
	}).Info("Tagihan created successfully")

	return tagihan, nil
}

// GetTagihanByUser returns a customer's bills, most recent first
func (s *billingService) GetTagihanByUser(userID uint) ([]*models.Tagihan, error) {
	return s.tagihanRepo.GetByUserID(userID)
}

// SubmitBuktiBayar stores the payment proof image on disk and moves the bill
// into the verification queue. Only the bill's owner may submit a proof.
func (s *billingService) SubmitBuktiBayar(tagihanID, userID uint, filename string, content []byte) (*models.Tagihan, error) {
	if len(content) == 0 {
		return nil, ErrMissingFile
	}

	tagihan, err := s.tagihanRepo.GetByID(tagihanID)
	if err != nil {
		return nil, err
	}

	if tagihan.UserID != userID {
		s.logger.WithFields(map[string]interface{}{
			"tagihan_id": tagihanID,
			"owner_id":   tagihan.UserID,
			"user_id":    userID,
		}).Warn("Rejected payment proof for another customer's bill")
		return nil, ErrNotOwner
	}

	// LUNAS is terminal
	if tagihan.StatusBayar == models.StatusLunas {
		return nil, ErrInvalidVerifikasi
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	stored := fmt.Sprintf("bukti-%d-%s%s", time.Now().UnixNano(), uuid.New().String()[:8], filepath.Ext(filename))
	path := filepath.Join(s.uploadDir, stored)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	tagihan.BuktiBayar = &stored
	tagihan.StatusBayar = models.StatusMenungguVerifikasi

	if err := s.tagihanRepo.Update(tagihan); err != nil {
		return nil, fmt.Errorf("failed to update tagihan: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"tagihan_id":  tagihan.ID,
		"bukti_bayar": stored,
	}).Info("Payment proof submitted")

	return tagihan, nil
}

// GetVerificationQueue returns all bills awaiting verification for the kasir
func (s *billingService) GetVerificationQueue() ([]*response.VerifikasiListItem, error) {
	return s.tagihanRepo.GetVerificationQueue()
}

// DecideVerification accepts or rejects a submitted payment proof. TERIMA
// marks the bill paid and keeps the proof; TOLAK returns it to unpaid and
// clears the proof so the customer has to upload again.
func (s *billingService) DecideVerification(tagihanID uint, aksi string) (*models.Tagihan, error) {
	if aksi != AksiTerima && aksi != AksiTolak {
		return nil, ErrUnknownAction
	}

	tagihan, err := s.tagihanRepo.GetByID(tagihanID)
	if err != nil {
		return nil, err
	}

	if tagihan.StatusBayar != models.StatusMenungguVerifikasi {
		return nil, ErrInvalidVerifikasi
	}

	if aksi == AksiTerima {
		tagihan.StatusBayar = models.StatusLunas
	} else {
		tagihan.StatusBayar = models.StatusBelumBayar
		tagihan.BuktiBayar = nil
	}

	if err := s.tagihanRepo.Update(tagihan); err != nil {
		return nil, fmt.Errorf("failed to update tagihan: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"tagihan_id": tagihan.ID,
		"aksi":       aksi,
		"status":     tagihan.StatusBayar,
	}).Info("Verification decided")

	return tagihan, nil
}
