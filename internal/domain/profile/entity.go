package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two login-capable profile variants. The access
// guard and credential store operate uniformly over the tag.
type Kind string

const (
	KindUser       Kind = "user"
	KindSuperadmin Kind = "superadmin"
)

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleOperator   Role = "operator"
	RoleViewer     Role = "viewer"
)

func ValidRoles() []Role {
	return []Role{RoleSuperadmin, RoleAdmin, RoleManager, RoleOperator, RoleViewer}
}

func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidRoles() {
		if role == valid {
			return role, true
		}
	}
	return "", false
}

// KindForRole returns the profile variant a role belongs to.
func KindForRole(role Role) Kind {
	if role == RoleSuperadmin {
		return KindSuperadmin
	}
	return KindUser
}

// Profile is the business entity representing a login-capable person.
// The password hash lives on the Credential; the profile only carries the
// reset-token state of the password reset flow.
type Profile struct {
	ID          uuid.UUID
	Kind        Kind
	FullName    string
	Email       string
	Role        Role
	PhoneNumber *string
	Department  *string
	IsActive    bool
	LastLoginAt *time.Time

	ResetTokenHash      *string
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
