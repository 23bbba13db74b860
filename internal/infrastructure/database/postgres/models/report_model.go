package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportModel represents the database model for Report
type ReportModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Type        string    `gorm:"type:varchar(50);not null;index"`
	PeriodStart time.Time `gorm:"not null"`
	PeriodEnd   time.Time `gorm:"not null"`
	GeneratedBy uuid.UUID `gorm:"type:uuid;not null;index"`
	Notes       *string   `gorm:"type:text"`
	FilePath    *string   `gorm:"type:varchar(512)"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (ReportModel) TableName() string {
	return "reports"
}
