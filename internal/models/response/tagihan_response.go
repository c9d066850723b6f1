package response

// VerifikasiListItem represents a bill awaiting verification, joined with the
// customer name for the kasir review screen
type VerifikasiListItem struct {
	ID         uint    `json:"id" example:"1"`
	UserName   string  `json:"user_name" example:"Budi Santoso"`
	Bulan      string  `json:"bulan" example:"Januari"`
	Tahun      int     `json:"tahun" example:"2024"`
	TotalBayar int64   `json:"total_bayar" example:"250000"`
	BuktiBayar *string `json:"bukti_bayar" example:"bukti-1704067200-ab12.jpg"`
}
