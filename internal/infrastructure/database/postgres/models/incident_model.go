package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentModel represents the database model for Incident
type IncidentModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MachineID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReporterID  *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text;not null"`
	Severity    string     `gorm:"type:varchar(20);not null;index"`
	Status      string     `gorm:"type:varchar(50);not null;default:'open';index"`
	OccurredAt  time.Time  `gorm:"not null"`
	ResolvedAt  *time.Time `gorm:"type:timestamp"`
	Attachments []string   `gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (IncidentModel) TableName() string {
	return "incidents"
}
