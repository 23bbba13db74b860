package operation

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainMachine "plantops/internal/domain/machine"
	domainOperation "plantops/internal/domain/operation"
	domainProfile "plantops/internal/domain/profile"
	"plantops/internal/infrastructure/storage"
	"plantops/internal/logger"
	appErrors "plantops/pkg/errors"
	"plantops/pkg/utils"
)

const uploadResource = "operations"

// FileStore persists operation attachments.
type FileStore interface {
	Save(file *multipart.FileHeader, resource string, allowedExts []string) (string, error)
	Remove(relPath string) error
}

// Service implements operation (work fiche) use cases.
type Service struct {
	operationRepo domainOperation.Repository
	machineRepo   domainMachine.Repository
	profileRepo   domainProfile.Repository
	files         FileStore
}

// NewService creates a new operation service
func NewService(
	operationRepo domainOperation.Repository,
	machineRepo domainMachine.Repository,
	profileRepo domainProfile.Repository,
	files FileStore,
) *Service {
	return &Service{
		operationRepo: operationRepo,
		machineRepo:   machineRepo,
		profileRepo:   profileRepo,
		files:         files,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateOperationRequest) (*OperationResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.ScheduledEnd != nil && req.ScheduledEnd.Before(req.ScheduledStart) {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Scheduled end precedes start", nil)
	}

	existing, err := s.operationRepo.GetByFicheID(ctx, req.FicheID)
	if err != nil && !errors.Is(err, domainOperation.ErrOperationNotFound) {
		return nil, fmt.Errorf("failed to check existing fiche: %w", err)
	}
	if existing != nil {
		return nil, domainOperation.ErrOperationAlreadyExists
	}

	if _, err := s.machineRepo.GetByID(ctx, req.MachineID); err != nil {
		return nil, err
	}
	if _, err := s.profileRepo.GetByID(ctx, req.OperatorID); err != nil {
		return nil, err
	}

	o := &domainOperation.Operation{
		FicheID:        req.FicheID,
		MachineID:      req.MachineID,
		OperatorID:     req.OperatorID,
		Title:          req.Title,
		Description:    req.Description,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		Status:         domainOperation.StatusPlanned,
		Attachments:    []string{},
	}

	if err := s.operationRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	logger.Info("Operation created",
		zap.String("operation_id", o.ID.String()),
		zap.String("fiche_id", o.FicheID),
		zap.String("event", "operation_created"),
	)

	return ToOperationResponse(o), nil
}

func (s *Service) Get(ctx context.Context, operationID uuid.UUID) (*OperationResponse, error) {
	o, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, err
	}

	return ToOperationResponse(o), nil
}

func (s *Service) List(ctx context.Context, req *ListOperationsRequest) (*OperationListResponse, error) {
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

	filter := &domainOperation.Filter{
		MachineID:  req.MachineID,
		OperatorID: req.OperatorID,
		Search:     req.Search,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if req.Status != nil {
		status := domainOperation.Status(*req.Status)
		filter.Status = &status
	}

	operations, total, err := s.operationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OperationResponse, len(operations))
	for i, o := range operations {
		responses[i] = *ToOperationResponse(o)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &OperationListResponse{
		Operations: responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.operationRepo.Count(ctx)
}

// Update applies a partial update. Reassigning the machine or operator
// re-checks that the target row exists.
func (s *Service) Update(ctx context.Context, operationID uuid.UUID, req *UpdateOperationRequest) (*OperationResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	o, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, err
	}

	if req.MachineID != nil && *req.MachineID != o.MachineID {
		if _, err := s.machineRepo.GetByID(ctx, *req.MachineID); err != nil {
			return nil, err
		}
		o.MachineID = *req.MachineID
	}
	if req.OperatorID != nil && *req.OperatorID != o.OperatorID {
		if _, err := s.profileRepo.GetByID(ctx, *req.OperatorID); err != nil {
			return nil, err
		}
		o.OperatorID = *req.OperatorID
	}
	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Description != nil {
		o.Description = req.Description
	}
	if req.ScheduledStart != nil {
		o.ScheduledStart = *req.ScheduledStart
	}
	if req.ScheduledEnd != nil {
		o.ScheduledEnd = req.ScheduledEnd
	}
	if o.ScheduledEnd != nil && o.ScheduledEnd.Before(o.ScheduledStart) {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Scheduled end precedes start", nil)
	}
	if req.Status != nil {
		status := domainOperation.Status(*req.Status)
		if !domainOperation.IsValidStatus(status) {
			return nil, domainOperation.ErrInvalidStatus
		}
		o.Status = status
	}

	if err := s.operationRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	logger.Info("Operation updated",
		zap.String("operation_id", operationID.String()),
		zap.String("event", "operation_updated"),
	)

	return ToOperationResponse(o), nil
}

func (s *Service) UpdateStatus(ctx context.Context, operationID uuid.UUID, req *UpdateStatusRequest) (*OperationResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	o, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, err
	}

	status := domainOperation.Status(req.Status)
	if !domainOperation.IsValidStatus(status) {
		return nil, domainOperation.ErrInvalidStatus
	}
	o.Status = status

	if err := s.operationRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	logger.Info("Operation status updated",
		zap.String("operation_id", operationID.String()),
		zap.String("status", req.Status),
		zap.String("event", "operation_status_updated"),
	)

	return ToOperationResponse(o), nil
}

// AddAttachment stores the uploaded file and appends its path to the
// operation's attachment list.
func (s *Service) AddAttachment(ctx context.Context, operationID uuid.UUID, file *multipart.FileHeader) (*OperationResponse, error) {
	o, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, err
	}

	relPath, err := s.files.Save(file, uploadResource, storage.ImagesAndPDF)
	if err != nil {
		return nil, err
	}

	o.Attachments = append(o.Attachments, relPath)

	if err := s.operationRepo.Update(ctx, o); err != nil {
		if removeErr := s.files.Remove(relPath); removeErr != nil {
			logger.Warn("Failed to remove orphaned upload",
				zap.String("path", relPath),
				zap.Error(removeErr),
			)
		}
		return nil, err
	}

	logger.Info("Operation attachment added",
		zap.String("operation_id", operationID.String()),
		zap.String("path", relPath),
		zap.String("event", "operation_attachment_added"),
	)

	return ToOperationResponse(o), nil
}

// Delete removes the operation row, then its attachment files. File
// removal failures are logged, never surfaced.
func (s *Service) Delete(ctx context.Context, operationID uuid.UUID) error {
	o, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return err
	}

	if err := s.operationRepo.Delete(ctx, operationID); err != nil {
		return err
	}

	for _, path := range o.Attachments {
		if err := s.files.Remove(path); err != nil {
			logger.Warn("Failed to remove operation attachment during delete",
				zap.String("operation_id", operationID.String()),
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}

	logger.Info("Operation deleted",
		zap.String("operation_id", operationID.String()),
		zap.String("event", "operation_deleted"),
	)

	return nil
}
