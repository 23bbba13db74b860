package machine

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainMachine "plantops/internal/domain/machine"
	"plantops/internal/infrastructure/storage"
	"plantops/internal/logger"
	appErrors "plantops/pkg/errors"
	"plantops/pkg/utils"
)

const uploadResource = "machines"

// FileStore persists uploaded machine images.
type FileStore interface {
	Save(file *multipart.FileHeader, resource string, allowedExts []string) (string, error)
	Remove(relPath string) error
}

// Service implements machine use cases
type Service struct {
	machineRepo domainMachine.Repository
	files       FileStore
}

// NewService creates a new machine service
func NewService(machineRepo domainMachine.Repository, files FileStore) *Service {
	return &Service{
		machineRepo: machineRepo,
		files:       files,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateMachineRequest) (*MachineResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	existing, err := s.machineRepo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, domainMachine.ErrMachineNotFound) {
		return nil, fmt.Errorf("failed to check existing machine: %w", err)
	}
	if existing != nil {
		return nil, domainMachine.ErrMachineAlreadyExists
	}

	m := &domainMachine.Machine{
		Name:           req.Name,
		Code:           req.Code,
		HandlingMethod: domainMachine.HandlingMethod(req.HandlingMethod),
		Location:       req.Location,
		Status:         domainMachine.StatusOperational,
		CommissionedAt: req.CommissionedAt,
	}

	if err := s.machineRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	logger.Info("Machine created",
		zap.String("machine_id", m.ID.String()),
		zap.String("name", m.Name),
		zap.String("event", "machine_created"),
	)

	return ToMachineResponse(m), nil
}

func (s *Service) Get(ctx context.Context, machineID uuid.UUID) (*MachineResponse, error) {
	m, err := s.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		return nil, err
	}

	return ToMachineResponse(m), nil
}

func (s *Service) List(ctx context.Context, req *ListMachinesRequest) (*MachineListResponse, error) {
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

	filter := &domainMachine.Filter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Status != nil {
		status := domainMachine.Status(*req.Status)
		filter.Status = &status
	}
	if req.HandlingMethod != nil {
		method := domainMachine.HandlingMethod(*req.HandlingMethod)
		filter.HandlingMethod = &method
	}

	machines, total, err := s.machineRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]MachineResponse, len(machines))
	for i, m := range machines {
		responses[i] = *ToMachineResponse(m)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &MachineListResponse{
		Machines:   responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.machineRepo.Count(ctx)
}

// Update applies a partial update: only fields present in the request
// overwrite existing values.
func (s *Service) Update(ctx context.Context, machineID uuid.UUID, req *UpdateMachineRequest) (*MachineResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	m, err := s.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Code != nil {
		m.Code = *req.Code
	}
	if req.HandlingMethod != nil {
		method := domainMachine.HandlingMethod(*req.HandlingMethod)
		if !domainMachine.IsValidHandlingMethod(method) {
			return nil, domainMachine.ErrInvalidHandling
		}
		m.HandlingMethod = method
	}
	if req.Location != nil {
		m.Location = req.Location
	}
	if req.Status != nil {
		status := domainMachine.Status(*req.Status)
		if !domainMachine.IsValidStatus(status) {
			return nil, domainMachine.ErrInvalidStatus
		}
		m.Status = status
	}
	if req.CommissionedAt != nil {
		m.CommissionedAt = req.CommissionedAt
	}

	if err := s.machineRepo.Update(ctx, m); err != nil {
		return nil, err
	}

	logger.Info("Machine updated",
		zap.String("machine_id", machineID.String()),
		zap.String("event", "machine_updated"),
	)

	return ToMachineResponse(m), nil
}

// UploadImage stores a new machine image and replaces the previous one.
// Removal of the old file is best-effort.
func (s *Service) UploadImage(ctx context.Context, machineID uuid.UUID, file *multipart.FileHeader) (*MachineResponse, error) {
	m, err := s.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		return nil, err
	}

	relPath, err := s.files.Save(file, uploadResource, storage.ImagesAndPDF)
	if err != nil {
		return nil, err
	}

	oldPath := m.ImagePath
	m.ImagePath = &relPath

	if err := s.machineRepo.Update(ctx, m); err != nil {
		if removeErr := s.files.Remove(relPath); removeErr != nil {
			logger.Warn("Failed to remove orphaned upload",
				zap.String("path", relPath),
				zap.Error(removeErr),
			)
		}
		return nil, err
	}

	if oldPath != nil {
		if err := s.files.Remove(*oldPath); err != nil {
			logger.Warn("Failed to remove replaced machine image",
				zap.String("machine_id", machineID.String()),
				zap.String("path", *oldPath),
				zap.Error(err),
			)
		}
	}

	logger.Info("Machine image uploaded",
		zap.String("machine_id", machineID.String()),
		zap.String("path", relPath),
		zap.String("event", "machine_image_uploaded"),
	)

	return ToMachineResponse(m), nil
}

// Delete removes the machine row, then its image file. File removal
// failures are logged, never surfaced.
func (s *Service) Delete(ctx context.Context, machineID uuid.UUID) error {
	m, err := s.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		return err
	}

	if err := s.machineRepo.Delete(ctx, machineID); err != nil {
		return err
	}

	if m.ImagePath != nil {
		if err := s.files.Remove(*m.ImagePath); err != nil {
			logger.Warn("Failed to remove machine image during delete",
				zap.String("machine_id", machineID.String()),
				zap.String("path", *m.ImagePath),
				zap.Error(err),
			)
		}
	}

	logger.Info("Machine deleted",
		zap.String("machine_id", machineID.String()),
		zap.String("event", "machine_deleted"),
	)

	return nil
}
