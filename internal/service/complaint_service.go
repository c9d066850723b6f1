package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pdam-be-svc/internal/models"
	"pdam-be-svc/internal/repository"
	"pdam-be-svc/pkg/logger"
)

// SubmitPengaduanInput carries a complaint submission. UserID is nil for
// guests, in which case Nama and Email identify the sender.
type SubmitPengaduanInput struct {
	UserID    *uint
	Nama      string
	Email     string
	Judul     string
	Deskripsi string
	// FotoFilename and FotoContent are optional
	FotoFilename string
	FotoContent  []byte
}

// ComplaintService defines the interface for complaint operations
type ComplaintService interface {
	SubmitGuestMessage(nama, email, pesan string) (*models.Pengaduan, error)
	SubmitPengaduan(input SubmitPengaduanInput) (*models.Pengaduan, error)
	GetPengaduanByUser(userID uint) ([]*models.Pengaduan, error)
	SoftDelete(pengaduanID, userID uint) error
	GetInbox() ([]*models.Pengaduan, error)
	MarkInboxRead() (int64, error)
	Reply(pengaduanID uint, status, tanggapan string) (*models.Pengaduan, error)
	HardDelete(pengaduanID uint) error
}

// complaintService implements ComplaintService
type complaintService struct {
	pengaduanRepo repository.PengaduanRepository
	uploadDir     string
	logger        *logger.Logger
}

// NewComplaintService creates a new instance of ComplaintService
func NewComplaintService(pengaduanRepo repository.PengaduanRepository, uploadDir string, logger *logger.Logger) ComplaintService {
	return &complaintService{
		pengaduanRepo: pengaduanRepo,
		uploadDir:     uploadDir,
		logger:        logger,
	}
}

// SubmitGuestMessage records a contact-form message from a guest
func (s *complaintService) SubmitGuestMessage(nama, email, pesan string) (*models.Pengaduan, error) {
	if nama == "" || email == "" || pesan == "" {
		return nil, ErrMissingFields
	}

	pengaduan := &models.Pengaduan{
		UserID:    nil,
		Nama:      nama,
		Email:     email,
		Judul:     fmt.Sprintf("Pesan Tamu: %s", nama),
		Deskripsi: pesan,
		Status:    models.PengaduanPending,
	}

	if err := s.pengaduanRepo.Create(pengaduan); err != nil {
		return nil, fmt.Errorf("failed to create guest message: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"pengaduan_id": pengaduan.ID,
		"email":        email,
	}).Info("Guest message recorded")

	return pengaduan, nil
}

// SubmitPengaduan records a complaint, owned by a customer when UserID is set
func (s *complaintService) SubmitPengaduan(input SubmitPengaduanInput) (*models.Pengaduan, error) {
	if input.Judul == "" || input.Deskripsi == "" {
		return nil, ErrMissingFields
	}
	if input.UserID == nil && (input.Nama == "" || input.Email == "") {
		return nil, ErrMissingFields
	}

	pengaduan := &models.Pengaduan{
		UserID:    input.UserID,
		Judul:     input.Judul,
		Deskripsi: input.Deskripsi,
		Status:    models.PengaduanPending,
	}

	// Guest identity fields only apply when no customer owns the complaint
	if input.UserID == nil {
		pengaduan.Nama = input.Nama
		pengaduan.Email = input.Email
	}

	if len(input.FotoContent) > 0 {
		stored, err := s.storeFoto(input.FotoFilename, input.FotoContent)
		if err != nil {
			return nil, err
		}
		pengaduan.Foto = &stored
	}

	if err := s.pengaduanRepo.Create(pengaduan); err != nil {
		return nil, fmt.Errorf("failed to create pengaduan: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"pengaduan_id": pengaduan.ID,
		"user_id":      input.UserID,
		"judul":        pengaduan.Judul,
	}).Info("Pengaduan submitted")

	return pengaduan, nil
}

// GetPengaduanByUser returns a customer's complaint history, hiding rows they
// soft-deleted
func (s *complaintService) GetPengaduanByUser(userID uint) ([]*models.Pengaduan, error) {
	return s.pengaduanRepo.GetByUserID(userID)
}

// SoftDelete hides a complaint from the customer's own history. The row stays
// visible to managers. Only the owning customer may hide it.
func (s *complaintService) SoftDelete(pengaduanID, userID uint) error {
	pengaduan, err := s.pengaduanRepo.GetByID(pengaduanID)
	if err != nil {
		return err
	}

	if pengaduan.UserID == nil || *pengaduan.UserID != userID {
		s.logger.WithFields(map[string]interface{}{
			"pengaduan_id": pengaduanID,
			"user_id":      userID,
		}).Warn("Rejected soft delete of a complaint the user does not own")
		return ErrNotOwner
	}

	pengaduan.IsDeletedByUser = true
	if err := s.pengaduanRepo.Update(pengaduan); err != nil {
		return fmt.Errorf("failed to soft delete pengaduan: %w", err)
	}

	s.logger.WithField("pengaduan_id", pengaduanID).Info("Pengaduan removed from customer history")
	return nil
}

// GetInbox returns every complaint, guest ones included, newest first. Listing
// does not mutate read flags; MarkInboxRead is the explicit operation for that.
func (s *complaintService) GetInbox() ([]*models.Pengaduan, error) {
	return s.pengaduanRepo.GetAllWithUser()
}

// MarkInboxRead flips all unread complaints to read and reports how many
func (s *complaintService) MarkInboxRead() (int64, error) {
	marked, err := s.pengaduanRepo.MarkAllRead()
	if err != nil {
		return 0, fmt.Errorf("failed to mark inbox read: %w", err)
	}

	s.logger.WithField("marked", marked).Info("Inbox marked read")
	return marked, nil
}

// Reply sets the manager's response and the complaint status
func (s *complaintService) Reply(pengaduanID uint, status, tanggapan string) (*models.Pengaduan, error) {
	pengaduan, err := s.pengaduanRepo.GetByID(pengaduanID)
	if err != nil {
		return nil, err
	}

	pengaduan.Status = status
	pengaduan.Tanggapan = &tanggapan

	if err := s.pengaduanRepo.Update(pengaduan); err != nil {
		return nil, fmt.Errorf("failed to update pengaduan: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"pengaduan_id": pengaduanID,
		"status":       status,
	}).Info("Pengaduan replied")

	return pengaduan, nil
}

// HardDelete permanently removes a complaint row
func (s *complaintService) HardDelete(pengaduanID uint) error {
	if _, err := s.pengaduanRepo.GetByID(pengaduanID); err != nil {
		return err
	}

	if err := s.pengaduanRepo.Delete(pengaduanID); err != nil {
		return fmt.Errorf("failed to delete pengaduan: %w", err)
	}

	s.logger.WithField("pengaduan_id", pengaduanID).Info("Pengaduan permanently deleted")
	return nil
}

// storeFoto writes a complaint photo to the upload dir under a generated name
func (s *complaintService) storeFoto(filename string, content []byte) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	stored := fmt.Sprintf("pengaduan-%d-%s%s", time.Now().UnixNano(), uuid.New().String()[:8], filepath.Ext(filename))
	path := filepath.Join(s.uploadDir, stored)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return stored, nil
}
