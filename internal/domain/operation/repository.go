package operation

import (
	"context"

	"github.com/google/uuid"
)

type Filter struct {
	MachineID  *uuid.UUID
	OperatorID *uuid.UUID
	Status     *Status
	Search     string
	Page       int
	PageSize   int
}

// Repository defines operation storage operations.
type Repository interface {
	Create(ctx context.Context, o *Operation) error
	GetByID(ctx context.Context, operationID uuid.UUID) (*Operation, error)
	GetByFicheID(ctx context.Context, ficheID string) (*Operation, error)
	List(ctx context.Context, filter *Filter) ([]*Operation, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, o *Operation) error
	Delete(ctx context.Context, operationID uuid.UUID) error
}
