package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"plantops/internal/config"
	domainCredential "plantops/internal/domain/credential"
	domainProfile "plantops/internal/domain/profile"
	"plantops/internal/logger"
	appErrors "plantops/pkg/errors"
	"plantops/pkg/utils"
)

const resetTokenTTL = time.Hour

// Mailer dispatches the reset link to the account owner.
type Mailer interface {
	SendPasswordReset(to, name, rawToken string) error
}

// Service implements authentication and the password reset flow.
type Service struct {
	credRepo    domainCredential.Repository
	profileRepo domainProfile.Repository
	mailer      Mailer
	config      *config.Config
}

// NewService creates a new auth service
func NewService(
	credRepo domainCredential.Repository,
	profileRepo domainProfile.Repository,
	mailer Mailer,
	cfg *config.Config,
) *Service {
	return &Service{
		credRepo:    credRepo,
		profileRepo: profileRepo,
		mailer:      mailer,
		config:      cfg,
	}
}

// Login verifies the credential and issues a session token. The failure
// message is identical whether the email is unknown or the password is
// wrong, so accounts cannot be enumerated.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	cred, err := s.credRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainCredential.ErrCredentialNotFound) {
			logger.Warn("Login attempt with unknown email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed_unknown_email"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(cred.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("profile_id", cred.ProfileID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	prof, err := s.profileRepo.GetByID(ctx, cred.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}

	if !prof.IsActive {
		logger.Warn("Login attempt for inactive profile",
			zap.String("profile_id", prof.ID.String()),
			zap.String("event", "login_failed_inactive_profile"),
		)
		return nil, domainProfile.ErrProfileInactive
	}

	token, expiresAt, err := utils.GenerateToken(
		prof.ID, prof.Email, string(prof.Role),
		s.config.JWT.Secret, s.config.JWT.ExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	if err := s.profileRepo.UpdateLastLogin(ctx, prof.ID, now); err != nil {
		logger.Error("Failed to record last login",
			zap.String("profile_id", prof.ID.String()),
			zap.Error(err),
		)
	} else {
		prof.LastLoginAt = &now
	}

	logger.Info("Login successful",
		zap.String("profile_id", prof.ID.String()),
		zap.String("role", string(prof.Role)),
		zap.String("event", "login_success"),
	)

	return &LoginResponse{
		Profile:   ToProfileResponse(prof),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Me returns the authenticated caller's profile.
func (s *Service) Me(ctx context.Context, profileID uuid.UUID) (*ProfileResponse, error) {
	prof, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	resp := ToProfileResponse(prof)
	return &resp, nil
}

// ChangePassword verifies the old password before swapping in the new hash.
func (s *Service) ChangePassword(ctx context.Context, profileID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	cred, err := s.credRepo.GetByProfileID(ctx, profileID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(cred.PasswordHash, req.OldPassword) {
		logger.Warn("Password change attempt with invalid old password",
			zap.String("profile_id", profileID.String()),
			zap.String("event", "password_change_failed_invalid_old_password"),
		)
		return appErrors.ErrInvalidCredentials
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.credRepo.UpdatePassword(ctx, profileID, newHash); err != nil {
		return err
	}

	logger.Info("Password changed",
		zap.String("profile_id", profileID.String()),
		zap.String("event", "password_changed"),
	)

	return nil
}

// ForgotPassword starts the reset flow. The response is identical whether
// or not the email exists.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	cred, err := s.credRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainCredential.ErrCredentialNotFound) {
			logger.Info("Password reset requested for unknown email",
				zap.String("email", req.Email),
				zap.String("event", "password_reset_requested_unknown_email"),
			)
			return nil // Do not reveal whether the account exists
		}
		return fmt.Errorf("failed to look up credential: %w", err)
	}

	prof, err := s.profileRepo.GetByID(ctx, cred.ProfileID)
	if err != nil {
		return fmt.Errorf("failed to resolve profile: %w", err)
	}

	rawToken, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	tokenHash := utils.HashResetToken(s.config.JWT.Secret, rawToken)
	expiresAt := time.Now().Add(resetTokenTTL)

	if err := s.profileRepo.SetResetToken(ctx, prof.ID, tokenHash, expiresAt); err != nil {
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(prof.Email, prof.FullName, rawToken); err != nil {
		// The raw token is lost with the failed mail; clear the stored
		// hash so no unreachable pending reset lingers.
		if clearErr := s.profileRepo.ClearResetToken(ctx, prof.ID); clearErr != nil {
			logger.Error("Failed to clear reset token after mail failure",
				zap.String("profile_id", prof.ID.String()),
				zap.Error(clearErr),
			)
		}
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	logger.Info("Password reset token issued",
		zap.String("profile_id", prof.ID.String()),
		zap.Time("expires_at", expiresAt),
		zap.String("event", "password_reset_token_issued"),
	)

	return nil
}

// ResetPassword exchanges a valid reset token for a new password. Clearing
// the stored hash on success makes the token single-use; the expiry bounds
// the window even if it is never consumed.
func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	tokenHash := utils.HashResetToken(s.config.JWT.Secret, req.Token)

	prof, err := s.profileRepo.GetByResetTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domainProfile.ErrProfileNotFound) {
			logger.Warn("Password reset attempt with unknown token",
				zap.String("event", "password_reset_failed_unknown_token"),
			)
			return appErrors.ErrInvalidResetToken
		}
		return err
	}

	if prof.ResetTokenExpiresAt == nil || time.Now().After(*prof.ResetTokenExpiresAt) {
		return appErrors.ErrInvalidResetToken
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.credRepo.UpdatePassword(ctx, prof.ID, newHash); err != nil {
		return err
	}

	if err := s.profileRepo.ClearResetToken(ctx, prof.ID); err != nil {
		// The password did change; a stale hash would allow replay, so
		// this failure is surfaced rather than swallowed.
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	logger.Info("Password reset completed",
		zap.String("profile_id", prof.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}
