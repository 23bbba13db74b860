package machine

import (
	"time"

	"github.com/google/uuid"

	domainMachine "plantops/internal/domain/machine"
)

type CreateMachineRequest struct {
	Name           string     `json:"name" validate:"required,min=2,max=255"`
	Code           string     `json:"code" validate:"required,min=2,max=100"`
	HandlingMethod string     `json:"handling_method" validate:"required,handling_method"`
	Location       *string    `json:"location" validate:"omitempty,max=255"`
	CommissionedAt *time.Time `json:"commissioned_at"`
}

type UpdateMachineRequest struct {
	Name           *string    `json:"name" validate:"omitempty,min=2,max=255"`
	Code           *string    `json:"code" validate:"omitempty,min=2,max=100"`
	HandlingMethod *string    `json:"handling_method" validate:"omitempty,handling_method"`
	Location       *string    `json:"location" validate:"omitempty,max=255"`
	Status         *string    `json:"status" validate:"omitempty,oneof=operational maintenance down"`
	CommissionedAt *time.Time `json:"commissioned_at"`
}

type ListMachinesRequest struct {
	Status         *string `form:"status" validate:"omitempty,oneof=operational maintenance down"`
	HandlingMethod *string `form:"handling_method" validate:"omitempty,handling_method"`
	Search         string  `form:"search"`
	Page           int     `form:"page" validate:"omitempty,min=1"`
	PageSize       int     `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type MachineResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Code           string     `json:"code"`
	HandlingMethod string     `json:"handling_method"`
	Location       *string    `json:"location,omitempty"`
	Status         string     `json:"status"`
	CommissionedAt *time.Time `json:"commissioned_at,omitempty"`
	ImagePath      *string    `json:"image_path,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type MachineListResponse struct {
	Machines   []MachineResponse `json:"machines"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

func ToMachineResponse(m *domainMachine.Machine) *MachineResponse {
	if m == nil {
		return nil
	}
	return &MachineResponse{
		ID:             m.ID,
		Name:           m.Name,
		Code:           m.Code,
		HandlingMethod: string(m.HandlingMethod),
		Location:       m.Location,
		Status:         string(m.Status),
		CommissionedAt: m.CommissionedAt,
		ImagePath:      m.ImagePath,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
