package performance

import (
	"time"

	"github.com/google/uuid"
)

// Record captures one operator's production figures on a machine for a day.
type Record struct {
	ID            uuid.UUID
	OperatorID    uuid.UUID
	MachineID     uuid.UUID
	RecordDate    time.Time
	UnitsProduced int
	DefectCount   int
	HoursWorked   float64
	Efficiency    *float64
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
