package machine

import (
	"context"

	"github.com/google/uuid"
)

type Filter struct {
	Status         *Status
	HandlingMethod *HandlingMethod
	Search         string
	Page           int
	PageSize       int
}

// Repository defines machine storage operations.
type Repository interface {
	Create(ctx context.Context, m *Machine) error
	GetByID(ctx context.Context, machineID uuid.UUID) (*Machine, error)
	GetByName(ctx context.Context, name string) (*Machine, error)
	GetByCode(ctx context.Context, code string) (*Machine, error)
	List(ctx context.Context, filter *Filter) ([]*Machine, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, m *Machine) error
	UpdateStatus(ctx context.Context, machineID uuid.UUID, status Status) error
	Delete(ctx context.Context, machineID uuid.UUID) error
}
