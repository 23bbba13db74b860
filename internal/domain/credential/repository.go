package credential

import (
	"context"

	"github.com/google/uuid"

	"plantops/internal/domain/profile"
)

// Repository defines credential storage operations. Operations touching
// both the credential and its profile run inside a single transaction so
// the two records can never diverge.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	GetByProfileID(ctx context.Context, profileID uuid.UUID) (*Credential, error)

	// CreateWithProfile persists the credential and its profile atomically.
	// Fails with ErrDuplicateEmail when the email is taken.
	CreateWithProfile(ctx context.Context, cred *Credential, p *profile.Profile) error

	UpdatePassword(ctx context.Context, profileID uuid.UUID, newHash string) error

	// UpdateEmail rewrites the email on both records in one transaction,
	// keeping Credential.Email and Profile.Email synchronized.
	UpdateEmail(ctx context.Context, profileID uuid.UUID, newEmail string) error

	// DeleteWithProfile removes the credential and the profile together.
	DeleteWithProfile(ctx context.Context, profileID uuid.UUID) error
}
