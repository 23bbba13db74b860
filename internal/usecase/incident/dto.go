package incident

import (
	"time"

	"github.com/google/uuid"

	domainIncident "plantops/internal/domain/incident"
)

type CreateIncidentRequest struct {
	MachineID   uuid.UUID  `json:"machine_id" validate:"required"`
	Title       string     `json:"title" validate:"required,min=2,max=255"`
	Description string     `json:"description" validate:"required"`
	Severity    string     `json:"severity" validate:"required,oneof=low medium high critical"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

type UpdateIncidentRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2,max=255"`
	Description *string `json:"description"`
	Severity    *string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Status      *string `json:"status" validate:"omitempty,oneof=open investigating resolved closed"`
}

type ListIncidentsRequest struct {
	MachineID  *uuid.UUID `form:"machine_id"`
	ReporterID *uuid.UUID `form:"reporter_id"`
	Severity   *string    `form:"severity" validate:"omitempty,oneof=low medium high critical"`
	Status     *string    `form:"status" validate:"omitempty,oneof=open investigating resolved closed"`
	Search     string     `form:"search"`
	Page       int        `form:"page" validate:"omitempty,min=1"`
	PageSize   int        `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type IncidentResponse struct {
	ID          uuid.UUID  `json:"id"`
	MachineID   uuid.UUID  `json:"machine_id"`
	ReporterID  *uuid.UUID `json:"reporter_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	Status      string     `json:"status"`
	OccurredAt  time.Time  `json:"occurred_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	Attachments []string   `json:"attachments"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type IncidentListResponse struct {
	Incidents  []IncidentResponse `json:"incidents"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

func ToIncidentResponse(i *domainIncident.Incident) *IncidentResponse {
	if i == nil {
		return nil
	}
	attachments := i.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return &IncidentResponse{
		ID:          i.ID,
		MachineID:   i.MachineID,
		ReporterID:  i.ReporterID,
		Title:       i.Title,
		Description: i.Description,
		Severity:    string(i.Severity),
		Status:      string(i.Status),
		OccurredAt:  i.OccurredAt,
		ResolvedAt:  i.ResolvedAt,
		Attachments: attachments,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
