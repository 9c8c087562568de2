package service

import (
	"context"
	"fmt"
	"time"

	"assetflow/internal/model"
	"assetflow/internal/repository"
	"assetflow/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordEntryCommand is the internal command workflow services use to append
// a ledger line within their own transaction.
type RecordEntryCommand struct {
	OrganizationID uuid.UUID
	EntryType      string
	Amount         decimal.Decimal
	EntryDate      time.Time
	Description    string
	AssetID        *uuid.UUID
	ReferenceType  string
	ReferenceID    *uuid.UUID
	CreatedBy      uuid.UUID
}

type AccountingEntryResponse struct {
	ID            string  `json:"id"`
	EntryType     string  `json:"entry_type"`
	Amount        string  `json:"amount"`
	EntryDate     string  `json:"entry_date"`
	Description   string  `json:"description"`
	AssetID       *string `json:"asset_id"`
	ReferenceType *string `json:"reference_type"`
	ReferenceID   *string `json:"reference_id"`
	CreatedBy     string  `json:"created_by"`
	CreatedAt     string  `json:"created_at"`
}

// AccountingService appends immutable financial entries referencing the
// workflow event that produced them. Entries are never updated or deleted.
type AccountingService interface {
	Record(ctx context.Context, cmd RecordEntryCommand) (*model.AccountingEntry, error)
	Get(ctx context.Context, id string) (AccountingEntryResponse, error)
	List(ctx context.Context, orgID, entryType string, page, limit int) ([]AccountingEntryResponse, int64, error)
}

type accountingService struct {
	entries repository.AccountingRepository
}

func NewAccountingService(entries repository.AccountingRepository) AccountingService {
	return &accountingService{entries: entries}
}

func (s *accountingService) Record(ctx context.Context, cmd RecordEntryCommand) (*model.AccountingEntry, error) {
	if cmd.EntryType == "" {
		return nil, apperr.Validation("entry type is required")
	}
	if cmd.CreatedBy == uuid.Nil {
		return nil, apperr.Validation("entry creator is required")
	}

	entry := &model.AccountingEntry{
		ID:             uuid.New(),
		OrganizationID: cmd.OrganizationID,
		EntryType:      cmd.EntryType,
		Amount:         cmd.Amount,
		EntryDate:      cmd.EntryDate,
		Description:    cmd.Description,
		AssetID:        cmd.AssetID,
		ReferenceID:    cmd.ReferenceID,
		CreatedBy:      cmd.CreatedBy,
	}
	if cmd.ReferenceType != "" {
		refType := cmd.ReferenceType
		entry.ReferenceType = &refType
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record accounting entry: %w", err)
	}
	return entry, nil
}

func (s *accountingService) Get(ctx context.Context, id string) (AccountingEntryResponse, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return AccountingEntryResponse{}, apperr.Validation("invalid entry id %q", id)
	}
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return AccountingEntryResponse{}, apperr.NotFound("accounting entry", id)
		}
		return AccountingEntryResponse{}, fmt.Errorf("failed to load accounting entry: %w", err)
	}
	return toEntryResponse(entry), nil
}

func (s *accountingService) List(ctx context.Context, orgID, entryType string, page, limit int) ([]AccountingEntryResponse, int64, error) {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return nil, 0, apperr.Validation("invalid organization id %q", orgID)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	entries, total, err := s.entries.List(ctx, org, entryType, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounting entries: %w", err)
	}

	res := make([]AccountingEntryResponse, 0, len(entries))
	for i := range entries {
		res = append(res, toEntryResponse(&entries[i]))
	}
	return res, total, nil
}

func toEntryResponse(e *model.AccountingEntry) AccountingEntryResponse {
	resp := AccountingEntryResponse{
		ID:          e.ID.String(),
		EntryType:   e.EntryType,
		Amount:      e.Amount.String(),
		EntryDate:   e.EntryDate.Format(time.RFC3339),
		Description: e.Description,
		CreatedBy:   e.CreatedBy.String(),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
	resp.AssetID = uuidPtrString(e.AssetID)
	resp.ReferenceID = uuidPtrString(e.ReferenceID)
	if e.ReferenceType != nil {
		s := *e.ReferenceType
		resp.ReferenceType = &s
	}
	return resp
}
