package models

import (
	"time"
)

// Pengaduan statuses
const (
	PengaduanPending  = "PENDING"
	PengaduanDiproses = "DIPROSES"
	PengaduanSelesai  = "SELESAI"
)

// Pengaduan represents the pengaduans table. A row is either owned by a
// customer (UserID set) or submitted by a guest (Nama and Email set).
type Pengaduan struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	UserID          *uint     `json:"user_id" gorm:"column:user_id"`
	Nama            string    `json:"nama" gorm:"column:nama"`
	Email           string    `json:"email" gorm:"column:email"`
	Judul           string    `json:"judul" gorm:"column:judul;not null"`
	Deskripsi       string    `json:"deskripsi" gorm:"column:deskripsi;not null"`
	Foto            *string   `json:"foto" gorm:"column:foto"`
	Status          string    `json:"status" gorm:"column:status;not null;default:PENDING"`
	Tanggapan       *string   `json:"tanggapan" gorm:"column:tanggapan"`
	IsRead          bool      `json:"is_read" gorm:"column:is_read;not null;default:false"`
	IsDeletedByUser bool      `json:"is_deleted_by_user" gorm:"column:is_deleted_by_user;not null;default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName sets the insert table name for Pengaduan
func (Pengaduan) TableName() string {
	return "pengaduans"
}
