package repository

import (
	"context"

	"assetflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetRepository defines data access for BudgetPlan entities.
type BudgetRepository interface {
	Create(ctx context.Context, plan *model.BudgetPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BudgetPlan, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.BudgetPlan, error)
	FindActivePlan(ctx context.Context, orgID, departmentID uuid.UUID, fiscalYear int, budgetType string) (*model.BudgetPlan, error)
	List(ctx context.Context, orgID uuid.UUID, fiscalYear int, page, limit int) ([]model.BudgetPlan, int64, error)
	Update(ctx context.Context, plan *model.BudgetPlan) error
}

type budgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) Create(ctx context.Context, plan *model.BudgetPlan) error {
	return GetDB(ctx, r.db).Create(plan).Error
}

func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BudgetPlan, error) {
	var plan model.BudgetPlan
	if err := GetDB(ctx, r.db).First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindByIDForUpdate locks the plan row so concurrent postings serialize and
// the overspend check reads a committed spent amount.
func (r *budgetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.BudgetPlan, error) {
	var plan model.BudgetPlan
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *budgetRepository) FindActivePlan(ctx context.Context, orgID, departmentID uuid.UUID, fiscalYear int, budgetType string) (*model.BudgetPlan, error) {
	var plan model.BudgetPlan
	if err := GetDB(ctx, r.db).First(&plan,
		"organization_id = ? AND department_id = ? AND fiscal_year = ? AND budget_type = ? AND status = ?",
		orgID, departmentID, fiscalYear, budgetType, model.BudgetActive).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *budgetRepository) List(ctx context.Context, orgID uuid.UUID, fiscalYear int, page, limit int) ([]model.BudgetPlan, int64, error) {
	var plans []model.BudgetPlan
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.BudgetPlan{}).Where("organization_id = ?", orgID)
	if fiscalYear > 0 {
		query = query.Where("fiscal_year = ?", fiscalYear)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("fiscal_year DESC, created_at DESC").Offset(offset).Limit(limit).Find(&plans).Error; err != nil {
		return nil, 0, err
	}

	return plans, total, nil
}

func (r *budgetRepository) Update(ctx context.Context, plan *model.BudgetPlan) error {
	return GetDB(ctx, r.db).Save(plan).Error
}
