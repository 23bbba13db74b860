package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Filter struct {
	Role     *Role
	IsActive *bool
	Search   string
	Page     int
	PageSize int
}

// Repository defines profile storage operations.
type Repository interface {
	GetByID(ctx context.Context, profileID uuid.UUID) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	List(ctx context.Context, filter *Filter) ([]*Profile, int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, p *Profile) error
	UpdateLastLogin(ctx context.Context, profileID uuid.UUID, at time.Time) error

	SetResetToken(ctx context.Context, profileID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*Profile, error)
	ClearResetToken(ctx context.Context, profileID uuid.UUID) error
	ClearExpiredResetTokens(ctx context.Context, before time.Time) (int64, error)
}
