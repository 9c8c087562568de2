package repository

import (
	"context"

	"assetflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaintenanceRepository defines data access for MaintenanceSchedule entities.
type MaintenanceRepository interface {
	Create(ctx context.Context, schedule *model.MaintenanceSchedule) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceSchedule, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.MaintenanceSchedule, error)
	List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.MaintenanceSchedule, int64, error)
	Update(ctx context.Context, schedule *model.MaintenanceSchedule) error
}

type maintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func (r *maintenanceRepository) Create(ctx context.Context, schedule *model.MaintenanceSchedule) error {
	return GetDB(ctx, r.db).Create(schedule).Error
}

func (r *maintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceSchedule, error) {
	var schedule model.MaintenanceSchedule
	if err := GetDB(ctx, r.db).First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *maintenanceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.MaintenanceSchedule, error) {
	var schedule model.MaintenanceSchedule
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *maintenanceRepository) List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.MaintenanceSchedule, int64, error) {
	var schedules []model.MaintenanceSchedule
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.MaintenanceSchedule{}).Where("organization_id = ?", orgID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("scheduled_date DESC").Offset(offset).Limit(limit).Find(&schedules).Error; err != nil {
		return nil, 0, err
	}

	return schedules, total, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, schedule *model.MaintenanceSchedule) error {
	return GetDB(ctx, r.db).Save(schedule).Error
}
