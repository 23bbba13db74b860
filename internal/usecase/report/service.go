package report

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainReport "plantops/internal/domain/report"
	"plantops/internal/infrastructure/storage"
	"plantops/internal/logger"
	appErrors "plantops/pkg/errors"
	"plantops/pkg/utils"
)

const uploadResource = "reports"

// FileStore persists report documents.
type FileStore interface {
	Save(file *multipart.FileHeader, resource string, allowedExts []string) (string, error)
	Remove(relPath string) error
}

// Service implements report use cases.
type Service struct {
	reportRepo domainReport.Repository
	files      FileStore
}

// NewService creates a new report service
func NewService(reportRepo domainReport.Repository, files FileStore) *Service {
	return &Service{
		reportRepo: reportRepo,
		files:      files,
	}
}

// Create records a report generated by the authenticated caller.
func (s *Service) Create(ctx context.Context, generatedBy uuid.UUID, req *CreateReportRequest) (*ReportResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, domainReport.ErrInvalidPeriod
	}

	r := &domainReport.Report{
		Title:       req.Title,
		Type:        domainReport.Type(req.Type),
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		GeneratedBy: generatedBy,
		Notes:       req.Notes,
	}

	if err := s.reportRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	logger.Info("Report created",
		zap.String("report_id", r.ID.String()),
		zap.String("type", string(r.Type)),
		zap.String("event", "report_created"),
	)

	return ToReportResponse(r), nil
}

func (s *Service) Get(ctx context.Context, reportID uuid.UUID) (*ReportResponse, error) {
	r, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	return ToReportResponse(r), nil
}

func (s *Service) List(ctx context.Context, req *ListReportsRequest) (*ReportListResponse, error) {
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

	filter := &domainReport.Filter{
		GeneratedBy: req.GeneratedBy,
		Page:        req.Page,
		PageSize:    req.PageSize,
	}
	if req.Type != nil {
		reportType := domainReport.Type(*req.Type)
		filter.Type = &reportType
	}

	reports, total, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = *ToReportResponse(r)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &ReportListResponse{
		Reports:    responses,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.reportRepo.Count(ctx)
}

// Update applies a partial update and re-validates the period whenever
// either bound moves.
func (s *Service) Update(ctx context.Context, reportID uuid.UUID, req *UpdateReportRequest) (*ReportResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	r, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Type != nil {
		reportType := domainReport.Type(*req.Type)
		if !domainReport.IsValidType(reportType) {
			return nil, domainReport.ErrInvalidType
		}
		r.Type = reportType
	}
	if req.PeriodStart != nil {
		r.PeriodStart = *req.PeriodStart
	}
	if req.PeriodEnd != nil {
		r.PeriodEnd = *req.PeriodEnd
	}
	if r.PeriodEnd.Before(r.PeriodStart) {
		return nil, domainReport.ErrInvalidPeriod
	}
	if req.Notes != nil {
		r.Notes = req.Notes
	}

	if err := s.reportRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	logger.Info("Report updated",
		zap.String("report_id", reportID.String()),
		zap.String("event", "report_updated"),
	)

	return ToReportResponse(r), nil
}

// UploadFile stores the report document (PDF only) and replaces any
// previous file.
func (s *Service) UploadFile(ctx context.Context, reportID uuid.UUID, file *multipart.FileHeader) (*ReportResponse, error) {
	r, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	relPath, err := s.files.Save(file, uploadResource, storage.PDFOnly)
	if err != nil {
		return nil, err
	}

	oldPath := r.FilePath
	r.FilePath = &relPath

	if err := s.reportRepo.Update(ctx, r); err != nil {
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
			logger.Warn("Failed to remove replaced report file",
				zap.String("report_id", reportID.String()),
				zap.String("path", *oldPath),
				zap.Error(err),
			)
		}
	}

	logger.Info("Report file uploaded",
		zap.String("report_id", reportID.String()),
		zap.String("path", relPath),
		zap.String("event", "report_file_uploaded"),
	)

	return ToReportResponse(r), nil
}

// Delete removes the report row, then its document. File removal
// failures are logged, never surfaced.
func (s *Service) Delete(ctx context.Context, reportID uuid.UUID) error {
	r, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}

	if err := s.reportRepo.Delete(ctx, reportID); err != nil {
		return err
	}

	if r.FilePath != nil {
		if err := s.files.Remove(*r.FilePath); err != nil {
			logger.Warn("Failed to remove report file during delete",
				zap.String("report_id", reportID.String()),
				zap.String("path", *r.FilePath),
				zap.Error(err),
			)
		}
	}

	logger.Info("Report deleted",
		zap.String("report_id", reportID.String()),
		zap.String("event", "report_deleted"),
	)

	return nil
}
