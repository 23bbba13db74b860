package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"plantops/internal/domain/incident"
	"plantops/internal/infrastructure/database/postgres/models"
)

// IncidentRepository implements incident.Repository
type IncidentRepository struct {
	db *DB
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *DB) incident.Repository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(ctx context.Context, i *incident.Incident) error {
	i.ID = uuid.New()
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()

	dbModel := toIncidentModel(i)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}

	return nil
}

func (r *IncidentRepository) GetByID(ctx context.Context, incidentID uuid.UUID) (*incident.Incident, error) {
	var dbModel models.IncidentModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", incidentID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, incident.ErrIncidentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}

	return toIncidentEntity(&dbModel), nil
}

func (r *IncidentRepository) List(ctx context.Context, filter *incident.Filter) ([]*incident.Incident, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.IncidentModel{})

	if filter.MachineID != nil {
		query = query.Where("machine_id = ?", *filter.MachineID)
	}
	if filter.ReporterID != nil {
		query = query.Where("reporter_id = ?", *filter.ReporterID)
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", string(*filter.Severity))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count incidents: %w", err)
	}

	var dbModels []models.IncidentModel
	err := query.Order("occurred_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list incidents: %w", err)
	}

	incidents := make([]*incident.Incident, len(dbModels))
	for i := range dbModels {
		incidents[i] = toIncidentEntity(&dbModels[i])
	}

	return incidents, total, nil
}

func (r *IncidentRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.DB.WithContext(ctx).Model(&models.IncidentModel{}).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count incidents: %w", err)
	}
	return total, nil
}

func (r *IncidentRepository) Update(ctx context.Context, i *incident.Incident) error {
	i.UpdatedAt = time.Now()

	dbModel := toIncidentModel(i)
	result := r.db.DB.WithContext(ctx).Model(&models.IncidentModel{}).
		Where("id = ?", i.ID).
		Select("title", "description", "severity", "status",
			"occurred_at", "resolved_at", "attachments", "updated_at").
		Updates(dbModel)

	if result.Error != nil {
		return fmt.Errorf("failed to update incident: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return incident.ErrIncidentNotFound
	}

	return nil
}

func (r *IncidentRepository) Delete(ctx context.Context, incidentID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.IncidentModel{}, "id = ?", incidentID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete incident: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return incident.ErrIncidentNotFound
	}

	return nil
}

func toIncidentModel(i *incident.Incident) *models.IncidentModel {
	return &models.IncidentModel{
		ID:          i.ID,
		MachineID:   i.MachineID,
		ReporterID:  i.ReporterID,
		Title:       i.Title,
		Description: i.Description,
		Severity:    string(i.Severity),
		Status:      string(i.Status),
		OccurredAt:  i.OccurredAt,
		ResolvedAt:  i.ResolvedAt,
		Attachments: i.Attachments,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toIncidentEntity(m *models.IncidentModel) *incident.Incident {
	return &incident.Incident{
		ID:          m.ID,
		MachineID:   m.MachineID,
		ReporterID:  m.ReporterID,
		Title:       m.Title,
		Description: m.Description,
		Severity:    incident.Severity(m.Severity),
		Status:      incident.Status(m.Status),
		OccurredAt:  m.OccurredAt,
		ResolvedAt:  m.ResolvedAt,
		Attachments: m.Attachments,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
