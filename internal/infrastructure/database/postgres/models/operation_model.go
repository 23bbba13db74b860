package models

import (
	"time"

	"github.com/google/uuid"
)

// OperationModel represents the database model for Operation
type OperationModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FicheID        string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	MachineID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	OperatorID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title          string     `gorm:"type:varchar(255);not null"`
	Description    *string    `gorm:"type:text"`
	ScheduledStart time.Time  `gorm:"not null"`
	ScheduledEnd   *time.Time `gorm:"type:timestamp"`
	Status         string     `gorm:"type:varchar(50);not null;default:'planned';index"`
	Attachments    []string   `gorm:"serializer:json;type:jsonb"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

func (OperationModel) TableName() string {
	return "operations"
}
