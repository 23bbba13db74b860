package operation

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Operation is a scheduled unit of work (fiche) carried out by an operator
// on a machine.
type Operation struct {
	ID             uuid.UUID
	FicheID        string
	MachineID      uuid.UUID
	OperatorID     uuid.UUID
	Title          string
	Description    *string
	ScheduledStart time.Time
	ScheduledEnd   *time.Time
	Status         Status
	Attachments    []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
