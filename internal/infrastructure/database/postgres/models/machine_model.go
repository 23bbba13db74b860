package models

import (
	"time"

	"github.com/google/uuid"
)

// MachineModel represents the database model for Machine
type MachineModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name           string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Code           string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	HandlingMethod string     `gorm:"type:varchar(50);not null"`
	Location       *string    `gorm:"type:varchar(255)"`
	Status         string     `gorm:"type:varchar(50);not null;default:'operational';index"`
	CommissionedAt *time.Time `gorm:"type:timestamp"`
	ImagePath      *string    `gorm:"type:varchar(512)"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

func (MachineModel) TableName() string {
	return "machines"
}
