package repository

import (
	"context"

	"assetflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransferRepository defines data access for AssetTransfer entities.
type TransferRepository interface {
	Create(ctx context.Context, transfer *model.AssetTransfer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AssetTransfer, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.AssetTransfer, error)
	List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.AssetTransfer, int64, error)
	Update(ctx context.Context, transfer *model.AssetTransfer) error
}

type transferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, transfer *model.AssetTransfer) error {
	return GetDB(ctx, r.db).Create(transfer).Error
}

func (r *transferRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AssetTransfer, error) {
	var transfer model.AssetTransfer
	if err := GetDB(ctx, r.db).First(&transfer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *transferRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.AssetTransfer, error) {
	var transfer model.AssetTransfer
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&transfer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *transferRepository) List(ctx context.Context, orgID uuid.UUID, status string, page, limit int) ([]model.AssetTransfer, int64, error) {
	var transfers []model.AssetTransfer
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.AssetTransfer{}).Where("organization_id = ?", orgID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&transfers).Error; err != nil {
		return nil, 0, err
	}

	return transfers, total, nil
}

func (r *transferRepository) Update(ctx context.Context, transfer *model.AssetTransfer) error {
	return GetDB(ctx, r.db).Save(transfer).Error
}
