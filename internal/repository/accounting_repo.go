package repository

import (
	"context"

	"assetflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountingRepository appends and reads immutable accounting entries. There
// is deliberately no Update or Delete on this interface.
type AccountingRepository interface {
	Create(ctx context.Context, entry *model.AccountingEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AccountingEntry, error)
	FindByReference(ctx context.Context, refType string, refID uuid.UUID) ([]model.AccountingEntry, error)
	List(ctx context.Context, orgID uuid.UUID, entryType string, page, limit int) ([]model.AccountingEntry, int64, error)
}

type accountingRepository struct {
	db *gorm.DB
}

func NewAccountingRepository(db *gorm.DB) AccountingRepository {
	return &accountingRepository{db: db}
}

func (r *accountingRepository) Create(ctx context.Context, entry *model.AccountingEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *accountingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AccountingEntry, error) {
	var entry model.AccountingEntry
	if err := GetDB(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *accountingRepository) FindByReference(ctx context.Context, refType string, refID uuid.UUID) ([]model.AccountingEntry, error) {
	var entries []model.AccountingEntry
	if err := GetDB(ctx, r.db).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *accountingRepository) List(ctx context.Context, orgID uuid.UUID, entryType string, page, limit int) ([]model.AccountingEntry, int64, error) {
	var entries []model.AccountingEntry
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.AccountingEntry{}).Where("organization_id = ?", orgID)
	if entryType != "" {
		query = query.Where("entry_type = ?", entryType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("entry_date DESC, created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
