package report

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeDaily    Type = "daily"
	TypeWeekly   Type = "weekly"
	TypeMonthly  Type = "monthly"
	TypeIncident Type = "incident"
)

func IsValidType(t Type) bool {
	switch t {
	case TypeDaily, TypeWeekly, TypeMonthly, TypeIncident:
		return true
	}
	return false
}

// Report is a record of a generated report document. The file itself is
// uploaded separately; only its relative path is stored here.
type Report struct {
	ID          uuid.UUID
	Title       string
	Type        Type
	PeriodStart time.Time
	PeriodEnd   time.Time
	GeneratedBy uuid.UUID
	Notes       *string
	FilePath    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
