package repository

import (
	"context"

	"assetflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryCheckRepository defines data access for InventoryCheck entities and
// their detail rows.
type InventoryCheckRepository interface {
	Create(ctx context.Context, check *model.InventoryCheck) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryCheck, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InventoryCheck, error)
	List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.InventoryCheck, int64, error)
	Update(ctx context.Context, check *model.InventoryCheck) error

	CreateDetails(ctx context.Context, details []model.InventoryDetail) error
	FindDetailsByCheckID(ctx context.Context, checkID uuid.UUID) ([]model.InventoryDetail, error)
	FindDetail(ctx context.Context, checkID, assetID uuid.UUID) (*model.InventoryDetail, error)
	UpdateDetail(ctx context.Context, detail *model.InventoryDetail) error
}

type inventoryCheckRepository struct {
	db *gorm.DB
}

func NewInventoryCheckRepository(db *gorm.DB) InventoryCheckRepository {
	return &inventoryCheckRepository{db: db}
}

func (r *inventoryCheckRepository) Create(ctx context.Context, check *model.InventoryCheck) error {
	return GetDB(ctx, r.db).Create(check).Error
}

func (r *inventoryCheckRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryCheck, error) {
	var check model.InventoryCheck
	if err := GetDB(ctx, r.db).First(&check, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &check, nil
}

func (r *inventoryCheckRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InventoryCheck, error) {
	var check model.InventoryCheck
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&check, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &check, nil
}

func (r *inventoryCheckRepository) List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.InventoryCheck, int64, error) {
	var checks []model.InventoryCheck
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.InventoryCheck{}).Where("organization_id = ?", orgID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("check_date DESC").Offset(offset).Limit(limit).Find(&checks).Error; err != nil {
		return nil, 0, err
	}

	return checks, total, nil
}

func (r *inventoryCheckRepository) Update(ctx context.Context, check *model.InventoryCheck) error {
	return GetDB(ctx, r.db).Omit("Details").Save(check).Error
}

func (r *inventoryCheckRepository) CreateDetails(ctx context.Context, details []model.InventoryDetail) error {
	if len(details) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&details).Error
}

func (r *inventoryCheckRepository) FindDetailsByCheckID(ctx context.Context, checkID uuid.UUID) ([]model.InventoryDetail, error) {
	var details []model.InventoryDetail
	if err := GetDB(ctx, r.db).
		Where("check_id = ?", checkID).
		Order("created_at ASC").
		Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

func (r *inventoryCheckRepository) FindDetail(ctx context.Context, checkID, assetID uuid.UUID) (*model.InventoryDetail, error) {
	var detail model.InventoryDetail
	if err := GetDB(ctx, r.db).
		First(&detail, "check_id = ? AND asset_id = ?", checkID, assetID).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *inventoryCheckRepository) UpdateDetail(ctx context.Context, detail *model.InventoryDetail) error {
	return GetDB(ctx, r.db).Save(detail).Error
}
