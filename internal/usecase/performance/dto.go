package performance

import (
	"time"

	"github.com/google/uuid"

	domainPerformance "plantops/internal/domain/performance"
)

type CreateRecordRequest struct {
	OperatorID    uuid.UUID `json:"operator_id" validate:"required"`
	MachineID     uuid.UUID `json:"machine_id" validate:"required"`
	RecordDate    time.Time `json:"record_date" validate:"required"`
	UnitsProduced int       `json:"units_produced" validate:"min=0"`
	DefectCount   int       `json:"defect_count" validate:"min=0"`
	HoursWorked   float64   `json:"hours_worked" validate:"required,gt=0,lte=24"`
	Notes         *string   `json:"notes"`
}

type UpdateRecordRequest struct {
	RecordDate    *time.Time `json:"record_date"`
	UnitsProduced *int       `json:"units_produced" validate:"omitempty,min=0"`
	DefectCount   *int       `json:"defect_count" validate:"omitempty,min=0"`
	HoursWorked   *float64   `json:"hours_worked" validate:"omitempty,gt=0,lte=24"`
	Notes         *string    `json:"notes"`
}

type ListRecordsRequest struct {
	OperatorID *uuid.UUID `form:"operator_id"`
	MachineID  *uuid.UUID `form:"machine_id"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Page       int        `form:"page" validate:"omitempty,min=1"`
	PageSize   int        `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type RecordResponse struct {
	ID            uuid.UUID `json:"id"`
	OperatorID    uuid.UUID `json:"operator_id"`
	MachineID     uuid.UUID `json:"machine_id"`
	RecordDate    time.Time `json:"record_date"`
	UnitsProduced int       `json:"units_produced"`
	DefectCount   int       `json:"defect_count"`
	HoursWorked   float64   `json:"hours_worked"`
	Efficiency    *float64  `json:"efficiency,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RecordListResponse struct {
	Records    []RecordResponse `json:"records"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

func ToRecordResponse(r *domainPerformance.Record) *RecordResponse {
	if r == nil {
		return nil
	}
	return &RecordResponse{
		ID:            r.ID,
		OperatorID:    r.OperatorID,
		MachineID:     r.MachineID,
		RecordDate:    r.RecordDate,
		UnitsProduced: r.UnitsProduced,
		DefectCount:   r.DefectCount,
		HoursWorked:   r.HoursWorked,
		Efficiency:    r.Efficiency,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
