package performance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Filter struct {
	OperatorID *uuid.UUID
	MachineID  *uuid.UUID
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// Repository defines performance record storage operations.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, recordID uuid.UUID) (*Record, error)
	List(ctx context.Context, filter *Filter) ([]*Record, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, recordID uuid.UUID) error
}
