package repository

import (
	"context"

	"assetflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DepartmentRepository defines data access for Department entities.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Department, error)
	List(ctx context.Context, orgID uuid.UUID) ([]model.Department, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) error {
	return GetDB(ctx, r.db).Create(dept).Error
}

func (r *departmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	var dept model.Department
	if err := GetDB(ctx, r.db).First(&dept, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, orgID uuid.UUID) ([]model.Department, error) {
	var depts []model.Department
	if err := GetDB(ctx, r.db).
		Where("organization_id = ?", orgID).
		Order("code ASC").
		Find(&depts).Error; err != nil {
		return nil, err
	}
	return depts, nil
}
