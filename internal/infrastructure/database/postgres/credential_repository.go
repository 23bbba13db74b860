package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"plantops/internal/domain/credential"
	"plantops/internal/domain/profile"
	"plantops/internal/infrastructure/database/postgres/models"
)

// CredentialRepository implements credential.Repository
type CredentialRepository struct {
	db *DB
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *DB) credential.Repository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (*credential.Credential, error) {
	var dbModel models.CredentialModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, credential.ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	return toCredentialEntity(&dbModel), nil
}

func (r *CredentialRepository) GetByProfileID(ctx context.Context, profileID uuid.UUID) (*credential.Credential, error) {
	var dbModel models.CredentialModel
	err := r.db.DB.WithContext(ctx).Where("profile_id = ?", profileID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, credential.ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	return toCredentialEntity(&dbModel), nil
}

// CreateWithProfile writes the profile and its credential in one transaction
// so a failure partway leaves neither record behind.
func (r *CredentialRepository) CreateWithProfile(ctx context.Context, cred *credential.Credential, p *profile.Profile) error {
	now := time.Now()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now

	cred.ID = uuid.New()
	cred.ProfileID = p.ID
	cred.ProfileKind = p.Kind
	cred.Email = p.Email
	cred.CreatedAt = now
	cred.UpdatedAt = now

	profileModel := toProfileModel(p)
	credModel := toCredentialModel(cred)

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profileModel).Error; err != nil {
			return err
		}
		return tx.Create(credModel).Error
	})
	if err != nil {
		if isDuplicateEmail(err) {
			return credential.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create credential: %w", err)
	}

	return nil
}

func (r *CredentialRepository) UpdatePassword(ctx context.Context, profileID uuid.UUID, newHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.CredentialModel{}).
		Where("profile_id = ?", profileID).
		Updates(map[string]interface{}{
			"password_hash": newHash,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return credential.ErrCredentialNotFound
	}

	return nil
}

// UpdateEmail rewrites both the credential and profile email in one
// transaction; the two must stay synchronized.
func (r *CredentialRepository) UpdateEmail(ctx context.Context, profileID uuid.UUID, newEmail string) error {
	now := time.Now()

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CredentialModel{}).
			Where("profile_id = ?", profileID).
			Updates(map[string]interface{}{"email": newEmail, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return credential.ErrCredentialNotFound
		}

		result = tx.Model(&models.ProfileModel{}).
			Where("id = ?", profileID).
			Updates(map[string]interface{}{"email": newEmail, "updated_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return profile.ErrProfileNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, credential.ErrCredentialNotFound) || errors.Is(err, profile.ErrProfileNotFound) {
			return err
		}
		if isDuplicateEmail(err) {
			return credential.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update email: %w", err)
	}

	return nil
}

func (r *CredentialRepository) DeleteWithProfile(ctx context.Context, profileID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CredentialModel{}, "profile_id = ?", profileID).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ProfileModel{}, "id = ?", profileID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return profile.ErrProfileNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	return nil
}

func isDuplicateEmail(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "email")
}

func toCredentialModel(c *credential.Credential) *models.CredentialModel {
	return &models.CredentialModel{
		ID:           c.ID,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		ProfileID:    c.ProfileID,
		ProfileKind:  string(c.ProfileKind),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toCredentialEntity(m *models.CredentialModel) *credential.Credential {
	return &credential.Credential{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		ProfileID:    m.ProfileID,
		ProfileKind:  profile.Kind(m.ProfileKind),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
