package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"plantops/internal/domain/performance"
	"plantops/internal/infrastructure/database/postgres/models"
)

// PerformanceRepository implements performance.Repository
type PerformanceRepository struct {
	db *DB
}

// NewPerformanceRepository creates a new performance repository
func NewPerformanceRepository(db *DB) performance.Repository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) Create(ctx context.Context, rec *performance.Record) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()

	dbModel := toPerformanceModel(rec)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create performance record: %w", err)
	}

	return nil
}

func (r *PerformanceRepository) GetByID(ctx context.Context, recordID uuid.UUID) (*performance.Record, error) {
	var dbModel models.PerformanceModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", recordID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, performance.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get performance record: %w", err)
	}

	return toPerformanceEntity(&dbModel), nil
}

func (r *PerformanceRepository) List(ctx context.Context, filter *performance.Filter) ([]*performance.Record, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.PerformanceModel{})

	if filter.OperatorID != nil {
		query = query.Where("operator_id = ?", *filter.OperatorID)
	}
	if filter.MachineID != nil {
		query = query.Where("machine_id = ?", *filter.MachineID)
	}
	if filter.From != nil {
		query = query.Where("record_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("record_date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count performance records: %w", err)
	}

	var dbModels []models.PerformanceModel
	err := query.Order("record_date DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list performance records: %w", err)
	}

	records := make([]*performance.Record, len(dbModels))
	for i := range dbModels {
		records[i] = toPerformanceEntity(&dbModels[i])
	}

	return records, total, nil
}

func (r *PerformanceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.DB.WithContext(ctx).Model(&models.PerformanceModel{}).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count performance records: %w", err)
	}
	return total, nil
}

func (r *PerformanceRepository) Update(ctx context.Context, rec *performance.Record) error {
	rec.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.PerformanceModel{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"record_date":    rec.RecordDate,
			"units_produced": rec.UnitsProduced,
			"defect_count":   rec.DefectCount,
			"hours_worked":   rec.HoursWorked,
			"efficiency":     rec.Efficiency,
			"notes":          rec.Notes,
			"updated_at":     rec.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update performance record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return performance.ErrRecordNotFound
	}

	return nil
}

func (r *PerformanceRepository) Delete(ctx context.Context, recordID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.PerformanceModel{}, "id = ?", recordID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete performance record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return performance.ErrRecordNotFound
	}

	return nil
}

func toPerformanceModel(rec *performance.Record) *models.PerformanceModel {
	return &models.PerformanceModel{
		ID:            rec.ID,
		OperatorID:    rec.OperatorID,
		MachineID:     rec.MachineID,
		RecordDate:    rec.RecordDate,
		UnitsProduced: rec.UnitsProduced,
		DefectCount:   rec.DefectCount,
		HoursWorked:   rec.HoursWorked,
		Efficiency:    rec.Efficiency,
		Notes:         rec.Notes,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func toPerformanceEntity(m *models.PerformanceModel) *performance.Record {
	return &performance.Record{
		ID:            m.ID,
		OperatorID:    m.OperatorID,
		MachineID:     m.MachineID,
		RecordDate:    m.RecordDate,
		UnitsProduced: m.UnitsProduced,
		DefectCount:   m.DefectCount,
		HoursWorked:   m.HoursWorked,
		Efficiency:    m.Efficiency,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
