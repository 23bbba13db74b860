package incident

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainIncident "plantops/internal/domain/incident"
	domainMachine "plantops/internal/domain/machine"
	"plantops/internal/infrastructure/storage"
	"plantops/internal/logger"
	appErrors "plantops/pkg/errors"
	"plantops/pkg/utils"
)

const uploadResource = "incidents"

// FileStore persists incident attachments.
type FileStore interface {
	Save(file *multipart.FileHeader, resource string, allowedExts []string) (string, error)
	Remove(relPath string) error
}

// Service implements incident use cases.
type Service struct {
	incidentRepo domainIncident.Repository
	machineRepo  domainMachine.Repository
	files        FileStore
}

// NewService creates a new incident service
func NewService(
	incidentRepo domainIncident.Repository,
	machineRepo domainMachine.Repository,
	files FileStore,
) *Service {
	return &Service{
		incidentRepo: incidentRepo,
		machineRepo:  machineRepo,
		files:        files,
	}
}

// Create opens an incident reported by the authenticated caller.
func (s *Service) Create(ctx context.Context, reporterID uuid.UUID, req *CreateIncidentRequest) (*IncidentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.machineRepo.GetByID(ctx, req.MachineID); err != nil {
		return nil, err
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	i := &domainIncident.Incident{
		MachineID:   req.MachineID,
		ReporterID:  &reporterID,
		Title:       req.Title,
		Description: req.Description,
		Severity:    domainIncident.Severity(req.Severity),
		Status:      domainIncident.StatusOpen,
		OccurredAt:  occurredAt,
		Attachments: []string{},
	}

	if err := s.incidentRepo.Create(ctx, i); err != nil {
		return nil, err
	}

	logger.Info("Incident created",
		zap.String("incident_id", i.ID.String()),
		zap.String("machine_id", i.MachineID.String()),
		zap.String("severity", string(i.Severity)),
		zap.String("event", "incident_created"),
	)

	return ToIncidentResponse(i), nil
}

func (s *Service) Get(ctx context.Context, incidentID uuid.UUID) (*IncidentResponse, error) {
	i, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	return ToIncidentResponse(i), nil
}

func (s *Service) List(ctx context.Context, req *ListIncidentsRequest) (*IncidentListResponse, error) {
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

	filter := &domainIncident.Filter{
		MachineID:  req.MachineID,
		ReporterID: req.ReporterID,
		Search:     req.Search,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if req.Severity != nil {
		severity := domainIncident.Severity(*req.Severity)
		filter.Severity = &severity
	}
	if req.Status != nil {
		status := domainIncident.Status(*req.Status)
		filter.Status = &status
	}

	incidents, total, err := s.incidentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]IncidentResponse, len(incidents))
	for i, inc := range incidents {
		responses[i] = *ToIncidentResponse(inc)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &IncidentListResponse{
		Incidents:  responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.incidentRepo.Count(ctx)
}

// Update applies a partial update. Moving the status to resolved or
// closed stamps ResolvedAt; moving it back clears the stamp.
func (s *Service) Update(ctx context.Context, incidentID uuid.UUID, req *UpdateIncidentRequest) (*IncidentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	i, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		i.Title = *req.Title
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.Severity != nil {
		severity := domainIncident.Severity(*req.Severity)
		if !domainIncident.IsValidSeverity(severity) {
			return nil, domainIncident.ErrInvalidSeverity
		}
		i.Severity = severity
	}
	if req.Status != nil {
		status := domainIncident.Status(*req.Status)
		if !domainIncident.IsValidStatus(status) {
			return nil, domainIncident.ErrInvalidStatus
		}
		applyStatus(i, status)
	}

	if err := s.incidentRepo.Update(ctx, i); err != nil {
		return nil, err
	}

	logger.Info("Incident updated",
		zap.String("incident_id", incidentID.String()),
		zap.String("event", "incident_updated"),
	)

	return ToIncidentResponse(i), nil
}

// Resolve marks the incident resolved and stamps the resolution time.
func (s *Service) Resolve(ctx context.Context, incidentID uuid.UUID) (*IncidentResponse, error) {
	i, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	if i.Status == domainIncident.StatusResolved || i.Status == domainIncident.StatusClosed {
		return nil, domainIncident.ErrAlreadyResolved
	}

	applyStatus(i, domainIncident.StatusResolved)

	if err := s.incidentRepo.Update(ctx, i); err != nil {
		return nil, err
	}

	logger.Info("Incident resolved",
		zap.String("incident_id", incidentID.String()),
		zap.String("event", "incident_resolved"),
	)

	return ToIncidentResponse(i), nil
}

// AddAttachment stores the uploaded file and appends its path to the
// incident's attachment list.
func (s *Service) AddAttachment(ctx context.Context, incidentID uuid.UUID, file *multipart.FileHeader) (*IncidentResponse, error) {
	i, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}

	relPath, err := s.files.Save(file, uploadResource, storage.ImagesAndPDF)
	if err != nil {
		return nil, err
	}

	i.Attachments = append(i.Attachments, relPath)

	if err := s.incidentRepo.Update(ctx, i); err != nil {
		if removeErr := s.files.Remove(relPath); removeErr != nil {
			logger.Warn("Failed to remove orphaned upload",
				zap.String("path", relPath),
				zap.Error(removeErr),
			)
		}
		return nil, err
	}

	logger.Info("Incident attachment added",
		zap.String("incident_id", incidentID.String()),
		zap.String("path", relPath),
		zap.String("event", "incident_attachment_added"),
	)

	return ToIncidentResponse(i), nil
}

// Delete removes the incident row, then its attachment files. File
// removal failures are logged, never surfaced.
func (s *Service) Delete(ctx context.Context, incidentID uuid.UUID) error {
	i, err := s.incidentRepo.GetByID(ctx, incidentID)
	if err != nil {
		return err
	}

	if err := s.incidentRepo.Delete(ctx, incidentID); err != nil {
		return err
	}

	for _, path := range i.Attachments {
		if err := s.files.Remove(path); err != nil {
			logger.Warn("Failed to remove incident attachment during delete",
				zap.String("incident_id", incidentID.String()),
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}

	logger.Info("Incident deleted",
		zap.String("incident_id", incidentID.String()),
		zap.String("event", "incident_deleted"),
	)

	return nil
}

func applyStatus(i *domainIncident.Incident, status domainIncident.Status) {
	switch status {
	case domainIncident.StatusResolved, domainIncident.StatusClosed:
		if i.ResolvedAt == nil {
			now := time.Now()
			i.ResolvedAt = &now
		}
	default:
		i.ResolvedAt = nil
	}
	i.Status = status
}
