package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"plantops/internal/domain/profile"
	"plantops/internal/infrastructure/database/postgres/models"
)

// ProfileRepository implements profile.Repository
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) profile.Repository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, profileID uuid.UUID) (*profile.Profile, error) {
	var dbModel models.ProfileModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", profileID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, profile.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return toProfileEntity(&dbModel), nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	var dbModel models.ProfileModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, profile.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return toProfileEntity(&dbModel), nil
}

func (r *ProfileRepository) List(ctx context.Context, filter *profile.Filter) ([]*profile.Profile, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.ProfileModel{})

	if filter.Role != nil {
		query = query.Where("role = ?", string(*filter.Role))
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	var dbModels []models.ProfileModel
	err := query.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]*profile.Profile, len(dbModels))
	for i := range dbModels {
		profiles[i] = toProfileEntity(&dbModels[i])
	}

	return profiles, total, nil
}

func (r *ProfileRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.DB.WithContext(ctx).Model(&models.ProfileModel{}).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return total, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *profile.Profile) error {
	p.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.ProfileModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"full_name":    p.FullName,
			"role":         string(p.Role),
			"kind":         string(p.Kind),
			"phone_number": p.PhoneNumber,
			"department":   p.Department,
			"is_active":    p.IsActive,
			"updated_at":   p.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepository) UpdateLastLogin(ctx context.Context, profileID uuid.UUID, at time.Time) error {
	result := r.db.DB.WithContext(ctx).Model(&models.ProfileModel{}).
		Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"last_login_at": at,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update last login: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepository) SetResetToken(ctx context.Context, profileID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	result := r.db.DB.WithContext(ctx).Model(&models.ProfileModel{}).
		Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"reset_token_hash":       tokenHash,
			"reset_token_expires_at": expiresAt,
			"updated_at":             time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set reset token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*profile.Profile, error) {
	var dbModel models.ProfileModel
	err := r.db.DB.WithContext(ctx).Where("reset_token_hash = ?", tokenHash).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, profile.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by reset token: %w", err)
	}

	return toProfileEntity(&dbModel), nil
}

func (r *ProfileRepository) ClearResetToken(ctx context.Context, profileID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Model(&models.ProfileModel{}).
		Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"reset_token_hash":       nil,
			"reset_token_expires_at": nil,
			"updated_at":             time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to clear reset token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return profile.ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepository) ClearExpiredResetTokens(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).Model(&models.ProfileModel{}).
		Where("reset_token_hash IS NOT NULL AND reset_token_expires_at < ?", before).
		Updates(map[string]interface{}{
			"reset_token_hash":       nil,
			"reset_token_expires_at": nil,
			"updated_at":             time.Now(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear expired reset tokens: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func toProfileModel(p *profile.Profile) *models.ProfileModel {
	return &models.ProfileModel{
		ID:                  p.ID,
		Kind:                string(p.Kind),
		FullName:            p.FullName,
		Email:               p.Email,
		Role:                string(p.Role),
		PhoneNumber:         p.PhoneNumber,
		Department:          p.Department,
		IsActive:            p.IsActive,
		LastLoginAt:         p.LastLoginAt,
		ResetTokenHash:      p.ResetTokenHash,
		ResetTokenExpiresAt: p.ResetTokenExpiresAt,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func toProfileEntity(m *models.ProfileModel) *profile.Profile {
	return &profile.Profile{
		ID:                  m.ID,
		Kind:                profile.Kind(m.Kind),
		FullName:            m.FullName,
		Email:               m.Email,
		Role:                profile.Role(m.Role),
		PhoneNumber:         m.PhoneNumber,
		Department:          m.Department,
		IsActive:            m.IsActive,
		LastLoginAt:         m.LastLoginAt,
		ResetTokenHash:      m.ResetTokenHash,
		ResetTokenExpiresAt: m.ResetTokenExpiresAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
