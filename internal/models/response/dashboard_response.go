package response

import "pdam-be-svc/internal/models"

// DashboardStats represents the aggregated counters on the manager dashboard
type DashboardStats struct {
	TotalPendapatan    int64 `json:"total_pendapatan" example:"250000"`
	TotalPelanggan     int64 `json:"total_pelanggan" example:"12"`
	TransaksiLunas     int   `json:"transaksi_lunas" example:"7"`
	TransaksiTunggakan int   `json:"transaksi_tunggakan" example:"3"`
	TotalAir           int   `json:"total_air" example:"420"`
	UnreadPengaduan    int64 `json:"unread_pengaduan" example:"2"`
}

// DashboardResponse represents the manager dashboard payload: the counters
// plus the full bill list for tabular display
type DashboardResponse struct {
	Stats   DashboardStats    `json:"stats"`
	Tagihan []*models.Tagihan `json:"data"`
}
