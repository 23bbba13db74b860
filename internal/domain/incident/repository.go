package incident

import (
	"context"

	"github.com/google/uuid"
)

type Filter struct {
	MachineID  *uuid.UUID
	ReporterID *uuid.UUID
	Severity   *Severity
	Status     *Status
	Search     string
	Page       int
	PageSize   int
}

// Repository defines incident storage operations.
type Repository interface {
	Create(ctx context.Context, i *Incident) error
	GetByID(ctx context.Context, incidentID uuid.UUID) (*Incident, error)
	List(ctx context.Context, filter *Filter) ([]*Incident, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, i *Incident) error
	Delete(ctx context.Context, incidentID uuid.UUID) error
}
