package profile

import (
	"time"

	"github.com/google/uuid"

	domainProfile "plantops/internal/domain/profile"
)

type CreateProfileRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=2,max=255"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required"`
	Role        string  `json:"role" validate:"required,profile_role"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone"`
	Department  *string `json:"department" validate:"omitempty,max=100"`
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Role        *string `json:"role" validate:"omitempty,profile_role"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone"`
	Department  *string `json:"department" validate:"omitempty,max=100"`
	IsActive    *bool   `json:"is_active"`
}

type ListProfilesRequest struct {
	Role     *string `form:"role" validate:"omitempty,profile_role"`
	IsActive *bool   `form:"is_active"`
	Search   string  `form:"search"`
	Page     int     `form:"page" validate:"omitempty,min=1"`
	PageSize int     `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type ProfileResponse struct {
	ID          uuid.UUID  `json:"id"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Department  *string    `json:"department,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ProfileListResponse struct {
	Profiles   []ProfileResponse `json:"profiles"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

func ToProfileResponse(p *domainProfile.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}
	return &ProfileResponse{
		ID:          p.ID,
		FullName:    p.FullName,
		Email:       p.Email,
		Role:        string(p.Role),
		PhoneNumber: p.PhoneNumber,
		Department:  p.Department,
		IsActive:    p.IsActive,
		LastLoginAt: p.LastLoginAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
