package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"plantops/internal/domain/operation"
	"plantops/internal/infrastructure/database/postgres/models"
)

// OperationRepository implements operation.Repository
type OperationRepository struct {
	db *DB
}

// NewOperationRepository creates a new operation repository
func NewOperationRepository(db *DB) operation.Repository {
	return &OperationRepository{db: db}
}

func (r *OperationRepository) Create(ctx context.Context, o *operation.Operation) error {
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()

	dbModel := toOperationModel(o)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return operation.ErrOperationAlreadyExists
		}
		return fmt.Errorf("failed to create operation: %w", err)
	}

	return nil
}

func (r *OperationRepository) GetByID(ctx context.Context, operationID uuid.UUID) (*operation.Operation, error) {
	var dbModel models.OperationModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", operationID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, operation.ErrOperationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operation: %w", err)
	}

	return toOperationEntity(&dbModel), nil
}

func (r *OperationRepository) GetByFicheID(ctx context.Context, ficheID string) (*operation.Operation, error) {
	var dbModel models.OperationModel
	err := r.db.DB.WithContext(ctx).Where("fiche_id = ?", ficheID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, operation.ErrOperationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operation: %w", err)
	}

	return toOperationEntity(&dbModel), nil
}

func (r *OperationRepository) List(ctx context.Context, filter *operation.Filter) ([]*operation.Operation, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.OperationModel{})

	if filter.MachineID != nil {
		query = query.Where("machine_id = ?", *filter.MachineID)
	}
	if filter.OperatorID != nil {
		query = query.Where("operator_id = ?", *filter.OperatorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR fiche_id ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count operations: %w", err)
	}

	var dbModels []models.OperationModel
	err := query.Order("scheduled_start DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list operations: %w", err)
	}

	operations := make([]*operation.Operation, len(dbModels))
	for i := range dbModels {
		operations[i] = toOperationEntity(&dbModels[i])
	}

	return operations, total, nil
}

func (r *OperationRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.DB.WithContext(ctx).Model(&models.OperationModel{}).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count operations: %w", err)
	}
	return total, nil
}

func (r *OperationRepository) Update(ctx context.Context, o *operation.Operation) error {
	o.UpdatedAt = time.Now()

	dbModel := toOperationModel(o)
	// Struct update with an explicit column list so empty fields are
	// written and the attachments serializer applies.
	result := r.db.DB.WithContext(ctx).Model(&models.OperationModel{}).
		Where("id = ?", o.ID).
		Select("title", "description", "machine_id", "operator_id",
			"scheduled_start", "scheduled_end", "status", "attachments", "updated_at").
		Updates(dbModel)

	if result.Error != nil {
		return fmt.Errorf("failed to update operation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return operation.ErrOperationNotFound
	}

	return nil
}

func (r *OperationRepository) Delete(ctx context.Context, operationID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.OperationModel{}, "id = ?", operationID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete operation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return operation.ErrOperationNotFound
	}

	return nil
}

func toOperationModel(o *operation.Operation) *models.OperationModel {
	return &models.OperationModel{
		ID:             o.ID,
		FicheID:        o.FicheID,
		MachineID:      o.MachineID,
		OperatorID:     o.OperatorID,
		Title:          o.Title,
		Description:    o.Description,
		ScheduledStart: o.ScheduledStart,
		ScheduledEnd:   o.ScheduledEnd,
		Status:         string(o.Status),
		Attachments:    o.Attachments,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toOperationEntity(m *models.OperationModel) *operation.Operation {
	return &operation.Operation{
		ID:             m.ID,
		FicheID:        m.FicheID,
		MachineID:      m.MachineID,
		OperatorID:     m.OperatorID,
		Title:          m.Title,
		Description:    m.Description,
		ScheduledStart: m.ScheduledStart,
		ScheduledEnd:   m.ScheduledEnd,
		Status:         operation.Status(m.Status),
		Attachments:    m.Attachments,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
