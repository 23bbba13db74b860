package performance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainMachine "plantops/internal/domain/machine"
	domainPerformance "plantops/internal/domain/performance"
	domainProfile "plantops/internal/domain/profile"
	"plantops/internal/logger"
	appErrors "plantops/pkg/errors"
	"plantops/pkg/utils"
)

// Service implements performance record use cases.
type Service struct {
	recordRepo  domainPerformance.Repository
	machineRepo domainMachine.Repository
	profileRepo domainProfile.Repository
}

// NewService creates a new performance service
func NewService(
	recordRepo domainPerformance.Repository,
	machineRepo domainMachine.Repository,
	profileRepo domainProfile.Repository,
) *Service {
	return &Service{
		recordRepo:  recordRepo,
		machineRepo: machineRepo,
		profileRepo: profileRepo,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateRecordRequest) (*RecordResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.profileRepo.GetByID(ctx, req.OperatorID); err != nil {
		return nil, err
	}
	if _, err := s.machineRepo.GetByID(ctx, req.MachineID); err != nil {
		return nil, err
	}

	r := &domainPerformance.Record{
		OperatorID:    req.OperatorID,
		MachineID:     req.MachineID,
		RecordDate:    req.RecordDate,
		UnitsProduced: req.UnitsProduced,
		DefectCount:   req.DefectCount,
		HoursWorked:   req.HoursWorked,
		Efficiency:    computeEfficiency(req.UnitsProduced, req.DefectCount),
		Notes:         req.Notes,
	}

	if err := s.recordRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	logger.Info("Performance record created",
		zap.String("record_id", r.ID.String()),
		zap.String("operator_id", r.OperatorID.String()),
		zap.String("event", "performance_record_created"),
	)

	return ToRecordResponse(r), nil
}

func (s *Service) Get(ctx context.Context, recordID uuid.UUID) (*RecordResponse, error) {
	r, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	return ToRecordResponse(r), nil
}

func (s *Service) List(ctx context.Context, req *ListRecordsRequest) (*RecordListResponse, error) {
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

	filter := &domainPerformance.Filter{
		OperatorID: req.OperatorID,
		MachineID:  req.MachineID,
		From:       req.From,
		To:         req.To,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	records, total, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RecordResponse, len(records))
	for i, r := range records {
		responses[i] = *ToRecordResponse(r)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &RecordListResponse{
		Records:    responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.recordRepo.Count(ctx)
}

// Update applies a partial update and recomputes the efficiency figure
// when any production number changes.
func (s *Service) Update(ctx context.Context, recordID uuid.UUID, req *UpdateRecordRequest) (*RecordResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	r, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if req.RecordDate != nil {
		r.RecordDate = *req.RecordDate
	}
	if req.UnitsProduced != nil {
		r.UnitsProduced = *req.UnitsProduced
	}
	if req.DefectCount != nil {
		r.DefectCount = *req.DefectCount
	}
	if req.HoursWorked != nil {
		r.HoursWorked = *req.HoursWorked
	}
	if req.Notes != nil {
		r.Notes = req.Notes
	}
	if req.UnitsProduced != nil || req.DefectCount != nil {
		r.Efficiency = computeEfficiency(r.UnitsProduced, r.DefectCount)
	}

	if err := s.recordRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	logger.Info("Performance record updated",
		zap.String("record_id", recordID.String()),
		zap.String("event", "performance_record_updated"),
	)

	return ToRecordResponse(r), nil
}

func (s *Service) Delete(ctx context.Context, recordID uuid.UUID) error {
	if err := s.recordRepo.Delete(ctx, recordID); err != nil {
		return err
	}

	logger.Info("Performance record deleted",
		zap.String("record_id", recordID.String()),
		zap.String("event", "performance_record_deleted"),
	)

	return nil
}

// computeEfficiency is the good-unit ratio in percent. Nil when nothing
// was produced, so an idle shift is distinguishable from a defective one.
func computeEfficiency(unitsProduced, defectCount int) *float64 {
	if unitsProduced <= 0 {
		return nil
	}
	good := unitsProduced - defectCount
	if good < 0 {
		good = 0
	}
	eff := float64(good) / float64(unitsProduced) * 100
	return &eff
}
