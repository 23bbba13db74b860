package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"plantops/internal/domain/report"
	"plantops/internal/infrastructure/database/postgres/models"
)

// ReportRepository implements report.Repository
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, rep *report.Report) error {
	rep.ID = uuid.New()
	rep.CreatedAt = time.Now()
	rep.UpdatedAt = time.Now()

	dbModel := toReportModel(rep)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, reportID uuid.UUID) (*report.Report, error) {
	var dbModel models.ReportModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", reportID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, report.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return toReportEntity(&dbModel), nil
}

func (r *ReportRepository) List(ctx context.Context, filter *report.Filter) ([]*report.Report, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.ReportModel{})

	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.GeneratedBy != nil {
		query = query.Where("generated_by = ?", *filter.GeneratedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	var dbModels []models.ReportModel
	err := query.Order("period_start DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]*report.Report, len(dbModels))
	for i := range dbModels {
		reports[i] = toReportEntity(&dbModels[i])
	}

	return reports, total, nil
}

func (r *ReportRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.DB.WithContext(ctx).Model(&models.ReportModel{}).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return total, nil
}

func (r *ReportRepository) Update(ctx context.Context, rep *report.Report) error {
	rep.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.ReportModel{}).
		Where("id = ?", rep.ID).
		Updates(map[string]interface{}{
			"title":        rep.Title,
			"type":         string(rep.Type),
			"period_start": rep.PeriodStart,
			"period_end":   rep.PeriodEnd,
			"notes":        rep.Notes,
			"file_path":    rep.FilePath,
			"updated_at":   rep.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return report.ErrReportNotFound
	}

	return nil
}

func (r *ReportRepository) Delete(ctx context.Context, reportID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.ReportModel{}, "id = ?", reportID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return report.ErrReportNotFound
	}

	return nil
}

func toReportModel(rep *report.Report) *models.ReportModel {
	return &models.ReportModel{
		ID:          rep.ID,
		Title:       rep.Title,
		Type:        string(rep.Type),
		PeriodStart: rep.PeriodStart,
		PeriodEnd:   rep.PeriodEnd,
		GeneratedBy: rep.GeneratedBy,
		Notes:       rep.Notes,
		FilePath:    rep.FilePath,
		CreatedAt:   rep.CreatedAt,
		UpdatedAt:   rep.UpdatedAt,
	}
}

func toReportEntity(m *models.ReportModel) *report.Report {
	return &report.Report{
		ID:          m.ID,
		Title:       m.Title,
		Type:        report.Type(m.Type),
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		GeneratedBy: m.GeneratedBy,
		Notes:       m.Notes,
		FilePath:    m.FilePath,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
