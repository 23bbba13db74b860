package credential

import (
	"time"

	"github.com/google/uuid"

	"plantops/internal/domain/profile"
)

// Credential is the email+password-hash record used for authentication,
// decoupled from the human-readable profile. Exactly one exists per
// login-capable profile; email uniqueness is enforced at the store level.
type Credential struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	ProfileID    uuid.UUID
	ProfileKind  profile.Kind
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
