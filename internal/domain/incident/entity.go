package incident

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func IsValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen          Status = "open"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
	StatusClosed        Status = "closed"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusOpen, StatusInvestigating, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Incident records a failure or anomaly observed on a machine. ReporterID
// is nil for incidents opened automatically from telemetry alarms.
type Incident struct {
	ID          uuid.UUID
	MachineID   uuid.UUID
	ReporterID  *uuid.UUID
	Title       string
	Description string
	Severity    Severity
	Status      Status
	OccurredAt  time.Time
	ResolvedAt  *time.Time
	Attachments []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
