package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"plantops/internal/domain/machine"
	"plantops/internal/infrastructure/database/postgres/models"
)

// MachineRepository implements machine.Repository
type MachineRepository struct {
	db *DB
}

// NewMachineRepository creates a new machine repository
func NewMachineRepository(db *DB) machine.Repository {
	return &MachineRepository{db: db}
}

func (r *MachineRepository) Create(ctx context.Context, m *machine.Machine) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()

	dbModel := toMachineModel(m)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return machine.ErrMachineAlreadyExists
		}
		return fmt.Errorf("failed to create machine: %w", err)
	}

	return nil
}

func (r *MachineRepository) GetByID(ctx context.Context, machineID uuid.UUID) (*machine.Machine, error) {
	var dbModel models.MachineModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", machineID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, machine.ErrMachineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}

	return toMachineEntity(&dbModel), nil
}

func (r *MachineRepository) GetByName(ctx context.Context, name string) (*machine.Machine, error) {
	var dbModel models.MachineModel
	err := r.db.DB.WithContext(ctx).Where("name = ?", name).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, machine.ErrMachineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}

	return toMachineEntity(&dbModel), nil
}

func (r *MachineRepository) GetByCode(ctx context.Context, code string) (*machine.Machine, error) {
	var dbModel models.MachineModel
	err := r.db.DB.WithContext(ctx).Where("code = ?", code).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, machine.ErrMachineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get machine: %w", err)
	}

	return toMachineEntity(&dbModel), nil
}

func (r *MachineRepository) List(ctx context.Context, filter *machine.Filter) ([]*machine.Machine, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.MachineModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.HandlingMethod != nil {
		query = query.Where("handling_method = ?", string(*filter.HandlingMethod))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count machines: %w", err)
	}

	var dbModels []models.MachineModel
	err := query.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list machines: %w", err)
	}

	machines := make([]*machine.Machine, len(dbModels))
	for i := range dbModels {
		machines[i] = toMachineEntity(&dbModels[i])
	}

	return machines, total, nil
}

func (r *MachineRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.DB.WithContext(ctx).Model(&models.MachineModel{}).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count machines: %w", err)
	}
	return total, nil
}

func (r *MachineRepository) Update(ctx context.Context, m *machine.Machine) error {
	m.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.MachineModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"name":            m.Name,
			"code":            m.Code,
			"handling_method": string(m.HandlingMethod),
			"location":        m.Location,
			"status":          string(m.Status),
			"commissioned_at": m.CommissionedAt,
			"image_path":      m.ImagePath,
			"updated_at":      m.UpdatedAt,
		})

	if result.Error != nil {
		if strings.Contains(strings.ToLower(result.Error.Error()), "duplicate key") {
			return machine.ErrMachineAlreadyExists
		}
		return fmt.Errorf("failed to update machine: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return machine.ErrMachineNotFound
	}

	return nil
}

func (r *MachineRepository) UpdateStatus(ctx context.Context, machineID uuid.UUID, status machine.Status) error {
	result := r.db.DB.WithContext(ctx).Model(&models.MachineModel{}).
		Where("id = ?", machineID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update machine status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return machine.ErrMachineNotFound
	}

	return nil
}

func (r *MachineRepository) Delete(ctx context.Context, machineID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.MachineModel{}, "id = ?", machineID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete machine: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return machine.ErrMachineNotFound
	}

	return nil
}

func toMachineModel(m *machine.Machine) *models.MachineModel {
	return &models.MachineModel{
		ID:             m.ID,
		Name:           m.Name,
		Code:           m.Code,
		HandlingMethod: string(m.HandlingMethod),
		Location:       m.Location,
		Status:         string(m.Status),
		CommissionedAt: m.CommissionedAt,
		ImagePath:      m.ImagePath,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toMachineEntity(m *models.MachineModel) *machine.Machine {
	return &machine.Machine{
		ID:             m.ID,
		Name:           m.Name,
		Code:           m.Code,
		HandlingMethod: machine.HandlingMethod(m.HandlingMethod),
		Location:       m.Location,
		Status:         machine.Status(m.Status),
		CommissionedAt: m.CommissionedAt,
		ImagePath:      m.ImagePath,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
