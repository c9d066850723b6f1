package service

import (
	"fmt"

	"pdam-be-svc/internal/models"
	"pdam-be-svc/internal/models/response"
	"pdam-be-svc/internal/repository"
	"pdam-be-svc/pkg/logger"
)

// DashboardService interface defines dashboard service methods
type DashboardService interface {
	GetManagerDashboard() (*response.DashboardResponse, error)
}

// dashboardService implements DashboardService interface
type dashboardService struct {
	tagihanRepo   repository.TagihanRepository
	userRepo      repository.UserRepository
	pengaduanRepo repository.PengaduanRepository
	logger        *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	tagihanRepo repository.TagihanRepository,
	userRepo repository.UserRepository,
	pengaduanRepo repository.PengaduanRepository,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		tagihanRepo:   tagihanRepo,
		userRepo:      userRepo,
		pengaduanRepo: pengaduanRepo,
		logger:        logger,
	}
}

// GetManagerDashboard aggregates the full bill ledger into the manager
// counters: revenue over paid bills, paid/unpaid counts, total water volume
// across all bills, customer count and unread complaint count.
func (s *dashboardService) GetManagerDashboard() (*response.DashboardResponse, error) {
	tagihans, err := s.tagihanRepo.GetAllWithUser()
	if err != nil {
		return nil, fmt.Errorf("failed to get tagihan list: %w", err)
	}

	totalPelanggan, err := s.userRepo.CountPelanggan()
	if err != nil {
		return nil, fmt.Errorf("failed to count pelanggan: %w", err)
	}

	unread, err := s.pengaduanRepo.CountUnread()
	if err != nil {
		return nil, fmt.Errorf("failed to count unread pengaduan: %w", err)
	}

	stats := response.DashboardStats{
		TotalPelanggan:  totalPelanggan,
		UnreadPengaduan: unread,
	}

	for _, t := range tagihans {
		stats.TotalAir += t.Volume()

		if t.StatusBayar == models.StatusLunas {
			stats.TotalPendapatan += t.TotalBayar
			stats.TransaksiLunas++
		} else {
			stats.TransaksiTunggakan++
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"total_pendapatan": stats.TotalPendapatan,
		"total_pelanggan":  stats.TotalPelanggan,
		"lunas":            stats.TransaksiLunas,
		"tunggakan":        stats.TransaksiTunggakan,
	}).Info("Manager dashboard computed")

	return &response.DashboardResponse{
		Stats:   stats,
		Tagihan: tagihans,
	}, nil
}
