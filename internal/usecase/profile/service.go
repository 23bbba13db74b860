package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainCredential "plantops/internal/domain/credential"
	domainProfile "plantops/internal/domain/profile"
	"plantops/internal/logger"
	appErrors "plantops/pkg/errors"
	"plantops/pkg/utils"
)

// Service implements user management use cases. Every profile is paired
// with exactly one credential; the pair is written and deleted atomically.
type Service struct {
	credRepo    domainCredential.Repository
	profileRepo domainProfile.Repository
}

// NewService creates a new profile service
func NewService(credRepo domainCredential.Repository, profileRepo domainProfile.Repository) *Service {
	return &Service{
		credRepo:    credRepo,
		profileRepo: profileRepo,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateProfileRequest) (*ProfileResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	role, ok := domainProfile.ParseRole(req.Role)
	if !ok {
		return nil, domainProfile.ErrInvalidRole
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	prof := &domainProfile.Profile{
		Kind:        domainProfile.KindForRole(role),
		FullName:    req.FullName,
		Email:       req.Email,
		Role:        role,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
		IsActive:    true,
	}
	cred := &domainCredential.Credential{
		PasswordHash: passwordHash,
	}

	if err := s.credRepo.CreateWithProfile(ctx, cred, prof); err != nil {
		return nil, err
	}

	logger.Info("Profile created",
		zap.String("profile_id", prof.ID.String()),
		zap.String("email", prof.Email),
		zap.String("role", string(prof.Role)),
		zap.String("event", "profile_created"),
	)

	return ToProfileResponse(prof), nil
}

func (s *Service) Get(ctx context.Context, profileID uuid.UUID) (*ProfileResponse, error) {
	prof, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	return ToProfileResponse(prof), nil
}

func (s *Service) List(ctx context.Context, req *ListProfilesRequest) (*ProfileListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	filter := &domainProfile.Filter{
		IsActive: req.IsActive,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Role != nil {
		role, ok := domainProfile.ParseRole(*req.Role)
		if !ok {
			return nil, domainProfile.ErrInvalidRole
		}
		filter.Role = &role
	}

	profiles, total, err := s.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		responses[i] = *ToProfileResponse(p)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &ProfileListResponse{
		Profiles:   responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.profileRepo.Count(ctx)
}

// Update applies a partial update: only fields present in the request
// overwrite existing values. An email change rewrites both the profile and
// its credential in one transaction.
func (s *Service) Update(ctx context.Context, profileID uuid.UUID, req *UpdateProfileRequest) (*ProfileResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	prof, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != prof.Email {
		if err := s.credRepo.UpdateEmail(ctx, profileID, *req.Email); err != nil {
			return nil, err
		}
		prof.Email = *req.Email
	}

	if req.FullName != nil {
		prof.FullName = *req.FullName
	}
	if req.Role != nil {
		role, ok := domainProfile.ParseRole(*req.Role)
		if !ok {
			return nil, domainProfile.ErrInvalidRole
		}
		prof.Role = role
		prof.Kind = domainProfile.KindForRole(role)
	}
	if req.PhoneNumber != nil {
		prof.PhoneNumber = req.PhoneNumber
	}
	if req.Department != nil {
		prof.Department = req.Department
	}
	if req.IsActive != nil {
		prof.IsActive = *req.IsActive
	}

	if err := s.profileRepo.Update(ctx, prof); err != nil {
		return nil, err
	}

	updated, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	logger.Info("Profile updated",
		zap.String("profile_id", profileID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToProfileResponse(updated), nil
}

// Delete removes the profile and its credential together.
func (s *Service) Delete(ctx context.Context, profileID uuid.UUID) error {
	if err := s.credRepo.DeleteWithProfile(ctx, profileID); err != nil {
		return err
	}

	logger.Info("Profile deleted",
		zap.String("profile_id", profileID.String()),
		zap.String("event", "profile_deleted"),
	)

	return nil
}
