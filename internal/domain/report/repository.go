package report

import (
	"context"

	"github.com/google/uuid"
)

type Filter struct {
	Type        *Type
	GeneratedBy *uuid.UUID
	Page        int
	PageSize    int
}

// Repository defines report storage operations.
type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, reportID uuid.UUID) (*Report, error)
	List(ctx context.Context, filter *Filter) ([]*Report, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, r *Report) error
	Delete(ctx context.Context, reportID uuid.UUID) error
}
