package operation

import (
	"time"

	"github.com/google/uuid"

	domainOperation "plantops/internal/domain/operation"
)

type CreateOperationRequest struct {
	FicheID        string     `json:"fiche_id" validate:"required,min=2,max=100"`
	MachineID      uuid.UUID  `json:"machine_id" validate:"required"`
	OperatorID     uuid.UUID  `json:"operator_id" validate:"required"`
	Title          string     `json:"title" validate:"required,min=2,max=255"`
	Description    *string    `json:"description"`
	ScheduledStart time.Time  `json:"scheduled_start" validate:"required"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
}

type UpdateOperationRequest struct {
	MachineID      *uuid.UUID `json:"machine_id"`
	OperatorID     *uuid.UUID `json:"operator_id"`
	Title          *string    `json:"title" validate:"omitempty,min=2,max=255"`
	Description    *string    `json:"description"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	Status         *string    `json:"status" validate:"omitempty,oneof=planned in_progress completed cancelled"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planned in_progress completed cancelled"`
}

type ListOperationsRequest struct {
	MachineID  *uuid.UUID `form:"machine_id"`
	OperatorID *uuid.UUID `form:"operator_id"`
	Status     *string    `form:"status" validate:"omitempty,oneof=planned in_progress completed cancelled"`
	Search     string     `form:"search"`
	Page       int        `form:"page" validate:"omitempty,min=1"`
	PageSize   int        `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type OperationResponse struct {
	ID             uuid.UUID  `json:"id"`
	FicheID        string     `json:"fiche_id"`
	MachineID      uuid.UUID  `json:"machine_id"`
	OperatorID     uuid.UUID  `json:"operator_id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	Status         string     `json:"status"`
	Attachments    []string   `json:"attachments"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type OperationListResponse struct {
	Operations []OperationResponse `json:"operations"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

func ToOperationResponse(o *domainOperation.Operation) *OperationResponse {
	if o == nil {
		return nil
	}
	attachments := o.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return &OperationResponse{
		ID:             o.ID,
		FicheID:        o.FicheID,
		MachineID:      o.MachineID,
		OperatorID:     o.OperatorID,
		Title:          o.Title,
		Description:    o.Description,
		ScheduledStart: o.ScheduledStart,
		ScheduledEnd:   o.ScheduledEnd,
		Status:         string(o.Status),
		Attachments:    attachments,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
