package repository

import (
	"context"

	"assetflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DisposalRepository defines data access for AssetDisposal entities.
type DisposalRepository interface {
	Create(ctx context.Context, disposal *model.AssetDisposal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AssetDisposal, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.AssetDisposal, error)
	List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.AssetDisposal, int64, error)
	Update(ctx context.Context, disposal *model.AssetDisposal) error
}

type disposalRepository struct {
	db *gorm.DB
}

func NewDisposalRepository(db *gorm.DB) DisposalRepository {
	return &disposalRepository{db: db}
}

func (r *disposalRepository) Create(ctx context.Context, disposal *model.AssetDisposal) error {
	return GetDB(ctx, r.db).Create(disposal).Error
}

func (r *disposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AssetDisposal, error) {
	var disposal model.AssetDisposal
	if err := GetDB(ctx, r.db).First(&disposal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &disposal, nil
}

func (r *disposalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.AssetDisposal, error) {
	var disposal model.AssetDisposal
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&disposal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &disposal, nil
}

func (r *disposalRepository) List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.AssetDisposal, int64, error) {
	var disposals []model.AssetDisposal
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.AssetDisposal{}).Where("organization_id = ?", orgID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&disposals).Error; err != nil {
		return nil, 0, err
	}

	return disposals, total, nil
}

func (r *disposalRepository) Update(ctx context.Context, disposal *model.AssetDisposal) error {
	return GetDB(ctx, r.db).Save(disposal).Error
}
