package models

import (
	"time"
)

// Tagihan payment statuses
const (
	StatusBelumBayar         = "BELUM_BAYAR"
	StatusMenungguVerifikasi = "MENUNGGU_VERIFIKASI"
	StatusLunas              = "LUNAS"
)

// Tagihan represents the tagihans table, one monthly water bill per customer.
// The (user_id, bulan, tahun) composite unique index enforces one bill per
// customer per period at the storage layer.
type Tagihan struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_tagihan_periode"`
	Bulan       string    `json:"bulan" gorm:"column:bulan;not null;uniqueIndex:idx_tagihan_periode"`
	Tahun       int       `json:"tahun" gorm:"column:tahun;not null;uniqueIndex:idx_tagihan_periode"`
	MeterAwal   int       `json:"meter_awal" gorm:"column:meter_awal;not null"`
	MeterAkhir  int       `json:"meter_akhir" gorm:"column:meter_akhir;not null"`
	TotalBayar  int64     `json:"total_bayar" gorm:"column:total_bayar;not null"`
	StatusBayar string    `json:"status_bayar" gorm:"column:status_bayar;not null;default:BELUM_BAYAR"`
	BuktiBayar  *string   `json:"bukti_bayar" gorm:"column:bukti_bayar"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName sets the insert table name for Tagihan
func (Tagihan) TableName() string {
	return "tagihans"
}

// Volume returns the water usage covered by this bill in cubic meters
func (t *Tagihan) Volume() int {
	return t.MeterAkhir - t.MeterAwal
}
