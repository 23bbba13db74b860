package models

import (
	"time"

	"github.com/google/uuid"
)

// PerformanceModel represents the database model for a performance record
type PerformanceModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OperatorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	MachineID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RecordDate    time.Time `gorm:"not null;index"`
	UnitsProduced int       `gorm:"not null;default:0"`
	DefectCount   int       `gorm:"not null;default:0"`
	HoursWorked   float64   `gorm:"not null;default:0"`
	Efficiency    *float64
	Notes         *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (PerformanceModel) TableName() string {
	return "performances"
}
