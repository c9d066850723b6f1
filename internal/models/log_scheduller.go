package models

import (
	"time"
)

// LogScheduller represents the log_schedullers table, one row per scheduler
// run status transition
type LogScheduller struct {
	ID               uint      `json:"id" gorm:"primarykey"`
	DocumentID       string    `json:"document_id" gorm:"column:document_id"`
	SchedullerCode   string    `json:"scheduller_code" gorm:"column:scheduller_code"`
	Message          string    `json:"message" gorm:"column:message"`
	StatusScheduller string    `json:"status_scheduller" gorm:"column:status_scheduller"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName sets the insert table name for LogScheduller
func (LogScheduller) TableName() string {
	return "log_schedullers"
}
