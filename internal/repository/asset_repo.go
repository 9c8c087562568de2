package repository

import (
	"context"
	"errors"

	"assetflow/internal/model"
	"assetflow/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetRepository defines data access for Asset entities.
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*model.Asset, error)
	List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.Asset, int64, error)
	Update(ctx context.Context, asset *model.Asset) error
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) error {
	return GetDB(ctx, r.db).Create(asset).Error
}

func (r *assetRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	if err := GetDB(ctx, r.db).First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindByIDForUpdate locks the asset row for the duration of the surrounding
// transaction so concurrent workflow transitions serialize on it.
func (r *assetRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) FindByCode(ctx context.Context, orgID uuid.UUID, code string) (*model.Asset, error) {
	var asset model.Asset
	if err := GetDB(ctx, r.db).
		First(&asset, "organization_id = ? AND code = ?", orgID, code).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.Asset, int64, error) {
	var assets []model.Asset
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Asset{}).Where("organization_id = ?", orgID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&assets).Error; err != nil {
		return nil, 0, err
	}

	return assets, total, nil
}

// Update saves the asset with an optimistic version check. A stale version
// means another writer committed first: the caller gets a retryable conflict
// and no row is modified.
func (r *assetRepository) Update(ctx context.Context, asset *model.Asset) error {
	current := asset.Version
	asset.Version = current + 1

	res := GetDB(ctx, r.db).Model(&model.Asset{}).
		Where("id = ? AND version = ?", asset.ID, current).
		Updates(map[string]interface{}{
			"name":          asset.Name,
			"category":      asset.Category,
			"location":      asset.Location,
			"status":        asset.Status,
			"department_id": asset.DepartmentID,
			"user_id":       asset.UserID,
			"version":       asset.Version,
		})
	if res.Error != nil {
		asset.Version = current
		return res.Error
	}
	if res.RowsAffected == 0 {
		asset.Version = current
		return apperr.Conflict("asset", asset.ID)
	}
	return nil
}

// IsNotFound reports whether err is the driver-level missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
