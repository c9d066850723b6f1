package models

import (
	"time"
)

// User roles
const (
	RolePelanggan = "PELANGGAN"
	RoleKasir     = "KASIR"
	RoleManager   = "MANAGER"
)

// User represents the users table
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"column:name;not null"`
	Email     string    `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"column:password;not null"`
	Address   string    `json:"address" gorm:"column:address"`
	Role      string    `json:"role" gorm:"column:role;not null;default:PELANGGAN"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the insert table name for User
func (User) TableName() string {
	return "users"
}
