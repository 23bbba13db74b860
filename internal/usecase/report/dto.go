package report

import (
	"time"

	"github.com/google/uuid"

	domainReport "plantops/internal/domain/report"
)

type CreateReportRequest struct {
	Title       string    `json:"title" validate:"required,min=2,max=255"`
	Type        string    `json:"type" validate:"required,oneof=daily weekly monthly incident"`
	PeriodStart time.Time `json:"period_start" validate:"required"`
	PeriodEnd   time.Time `json:"period_end" validate:"required"`
	Notes       *string   `json:"notes"`
}

type UpdateReportRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=2,max=255"`
	Type        *string    `json:"type" validate:"omitempty,oneof=daily weekly monthly incident"`
	PeriodStart *time.Time `json:"period_start"`
	PeriodEnd   *time.Time `json:"period_end"`
	Notes       *string    `json:"notes"`
}

type ListReportsRequest struct {
	Type        *string    `form:"type" validate:"omitempty,oneof=daily weekly monthly incident"`
	GeneratedBy *uuid.UUID `form:"generated_by"`
	Page        int        `form:"page" validate:"omitempty,min=1"`
	PageSize    int        `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type ReportResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	GeneratedBy uuid.UUID `json:"generated_by"`
	Notes       *string   `json:"notes,omitempty"`
	FilePath    *string   `json:"file_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReportListResponse struct {
	Reports    []ReportResponse `json:"reports"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

func ToReportResponse(r *domainReport.Report) *ReportResponse {
	if r == nil {
		return nil
	}
	return &ReportResponse{
		ID:          r.ID,
		Title:       r.Title,
		Type:        string(r.Type),
		PeriodStart: r.PeriodStart,
		PeriodEnd:   r.PeriodEnd,
		GeneratedBy: r.GeneratedBy,
		Notes:       r.Notes,
		FilePath:    r.FilePath,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
