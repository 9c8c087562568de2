package service

import (
	"context"
	"fmt"
	"time"

	"assetflow/internal/model"
	"assetflow/internal/repository"
	ws "assetflow/internal/websocket"
	"assetflow/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs

type RequestDisposalRequest struct {
	AssetID       string `json:"asset_id" binding:"required"`
	DisposalType  string `json:"disposal_type" binding:"required,oneof=SALE SCRAP LOSS DONATION"`
	DisposalDate  string `json:"disposal_date"` // RFC3339, defaults to now
	DisposalValue string `json:"disposal_value"`
	Reason        string `json:"reason"`
}

type RejectDisposalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type DisposalResponse struct {
	ID                string  `json:"id"`
	AssetID           string  `json:"asset_id"`
	DisposalType      string  `json:"disposal_type"`
	DisposalDate      string  `json:"disposal_date"`
	DisposalValue     string  `json:"disposal_value"`
	Reason            string  `json:"reason"`
	Status            string  `json:"status"`
	ApprovedBy        *string `json:"approved_by"`
	RejectedBy        *string `json:"rejected_by"`
	RejectionReason   string  `json:"rejection_reason,omitempty"`
	AccountingEntryID *string `json:"accounting_entry_id"`
}

// DisposalService is the workflow retiring an asset. Approval permanently
// disposes the asset and posts exactly one accounting entry, atomically.
type DisposalService interface {
	Request(ctx context.Context, orgID string, req RequestDisposalRequest) (DisposalResponse, error)
	Approve(ctx context.Context, id, approverID string) (DisposalResponse, error)
	Reject(ctx context.Context, id, rejecterID, reason string) (DisposalResponse, error)
	Cancel(ctx context.Context, id string) (DisposalResponse, error)
	Get(ctx context.Context, id string) (DisposalResponse, error)
	List(ctx context.Context, orgID, status string, page, limit int) ([]DisposalResponse, int64, error)
}

type disposalService struct {
	disposals repository.DisposalRepository
	assets    repository.AssetRepository
	registry  AssetService
	recorder  AccountingService
	txManager repository.TransactionManager
	hub       *ws.Hub
}

func NewDisposalService(
	disposals repository.DisposalRepository,
	assets repository.AssetRepository,
	registry AssetService,
	recorder AccountingService,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) DisposalService {
	return &disposalService{
		disposals: disposals,
		assets:    assets,
		registry:  registry,
		recorder:  recorder,
		txManager: txManager,
		hub:       hub,
	}
}

func (s *disposalService) Request(ctx context.Context, orgID string, req RequestDisposalRequest) (DisposalResponse, error) {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return DisposalResponse{}, apperr.Validation("invalid organization id %q", orgID)
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return DisposalResponse{}, apperr.Validation("invalid asset id %q", req.AssetID)
	}

	asset, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		if repository.IsNotFound(err) {
			return DisposalResponse{}, apperr.NotFound("asset", req.AssetID)
		}
		return DisposalResponse{}, fmt.Errorf("failed to load asset: %w", err)
	}
	if asset.Status == model.AssetStatusDisposed {
		return DisposalResponse{}, apperr.InvalidState("asset", asset.Status, "dispose")
	}

	value := decimal.Zero
	if req.DisposalValue != "" {
		parsed, parseErr := decimal.NewFromString(req.DisposalValue)
		if parseErr != nil {
			return DisposalResponse{}, apperr.Validation("invalid disposal value %q", req.DisposalValue)
		}
		value = parsed
	}
	if value.IsNegative() {
		return DisposalResponse{}, apperr.Validation("disposal value must not be negative")
	}

	date := time.Now()
	if req.DisposalDate != "" {
		parsed, parseErr := time.Parse(time.RFC3339, req.DisposalDate)
		if parseErr != nil {
			return DisposalResponse{}, apperr.Validation("invalid disposal date %q", req.DisposalDate)
		}
		date = parsed
	}

	disposal := &model.AssetDisposal{
		ID:             uuid.New(),
		OrganizationID: org,
		AssetID:        assetID,
		DisposalType:   req.DisposalType,
		DisposalDate:   date,
		DisposalValue:  value,
		Reason:         req.Reason,
		Status:         model.DisposalPending,
	}

	if err := s.disposals.Create(ctx, disposal); err != nil {
		return DisposalResponse{}, fmt.Errorf("failed to create disposal: %w", err)
	}

	return toDisposalResponse(disposal), nil
}

// Approve disposes the asset and posts the accounting entry in one
// transaction: either both commit or neither does.
func (s *disposalService) Approve(ctx context.Context, id, approverID string) (DisposalResponse, error) {
	disposalID, err := uuid.Parse(id)
	if err != nil {
		return DisposalResponse{}, apperr.Validation("invalid disposal id %q", id)
	}
	approver, err := uuid.Parse(approverID)
	if err != nil {
		return DisposalResponse{}, apperr.Validation("invalid approver id %q", approverID)
	}

	var disposal *model.AssetDisposal
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		disposal, txErr = s.disposals.FindByIDForUpdate(txCtx, disposalID)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("disposal", id)
			}
			return fmt.Errorf("failed to load disposal: %w", txErr)
		}

		if disposal.Status != model.DisposalPending {
			return apperr.InvalidState("disposal", disposal.Status, "approve")
		}

		if _, txErr = s.registry.ChangeStatus(txCtx, disposal.AssetID, model.AssetStatusDisposed); txErr != nil {
			return txErr
		}

		entry, txErr := s.recorder.Record(txCtx, RecordEntryCommand{
			OrganizationID: disposal.OrganizationID,
			EntryType:      model.EntryTypeForDisposal(disposal.DisposalType),
			Amount:         disposal.DisposalValue,
			EntryDate:      disposal.DisposalDate,
			Description:    fmt.Sprintf("asset disposal (%s)", disposal.DisposalType),
			AssetID:        &disposal.AssetID,
			ReferenceType:  model.RefTypeDisposal,
			ReferenceID:    &disposal.ID,
			CreatedBy:      approver,
		})
		if txErr != nil {
			return txErr
		}

		now := time.Now()
		disposal.Status = model.DisposalApproved
		disposal.ApprovedBy = &approver
		disposal.ApprovedAt = &now
		disposal.AccountingEntryID = &entry.ID

		if txErr = s.disposals.Update(txCtx, disposal); txErr != nil {
			return fmt.Errorf("failed to update disposal: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return DisposalResponse{}, err
	}

	notify(s.hub, EventDisposalApproved, map[string]interface{}{
		"disposal_id": disposal.ID.String(),
		"asset_id":    disposal.AssetID.String(),
		"value":       disposal.DisposalValue.String(),
	})

	return toDisposalResponse(disposal), nil
}

func (s *disposalService) Reject(ctx context.Context, id, rejecterID, reason string) (DisposalResponse, error) {
	disposalID, err := uuid.Parse(id)
	if err != nil {
		return DisposalResponse{}, apperr.Validation("invalid disposal id %q", id)
	}
	rejecter, err := uuid.Parse(rejecterID)
	if err != nil {
		return DisposalResponse{}, apperr.Validation("invalid rejecter id %q", rejecterID)
	}
	if reason == "" {
		return DisposalResponse{}, apperr.Validation("rejection reason is required")
	}

	var disposal *model.AssetDisposal
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		disposal, txErr = s.disposals.FindByIDForUpdate(txCtx, disposalID)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("disposal", id)
			}
			return fmt.Errorf("failed to load disposal: %w", txErr)
		}

		if disposal.Status != model.DisposalPending {
			return apperr.InvalidState("disposal", disposal.Status, "reject")
		}

		disposal.Status = model.DisposalRejected
		disposal.RejectedBy = &rejecter
		disposal.RejectionReason = reason

		if txErr = s.disposals.Update(txCtx, disposal); txErr != nil {
			return fmt.Errorf("failed to update disposal: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return DisposalResponse{}, err
	}

	return toDisposalResponse(disposal), nil
}

func (s *disposalService) Cancel(ctx context.Context, id string) (DisposalResponse, error) {
	disposalID, err := uuid.Parse(id)
	if err != nil {
		return DisposalResponse{}, apperr.Validation("invalid disposal id %q", id)
	}

	var disposal *model.AssetDisposal
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		disposal, txErr = s.disposals.FindByIDForUpdate(txCtx, disposalID)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("disposal", id)
			}
			return fmt.Errorf("failed to load disposal: %w", txErr)
		}

		if disposal.Status != model.DisposalPending {
			return apperr.InvalidState("disposal", disposal.Status, "cancel")
		}

		disposal.Status = model.DisposalCancelled

		if txErr = s.disposals.Update(txCtx, disposal); txErr != nil {
			return fmt.Errorf("failed to update disposal: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return DisposalResponse{}, err
	}

	return toDisposalResponse(disposal), nil
}

func (s *disposalService) Get(ctx context.Context, id string) (DisposalResponse, error) {
	disposalID, err := uuid.Parse(id)
	if err != nil {
		return DisposalResponse{}, apperr.Validation("invalid disposal id %q", id)
	}
	disposal, err := s.disposals.FindByID(ctx, disposalID)
	if err != nil {
		if repository.IsNotFound(err) {
			return DisposalResponse{}, apperr.NotFound("disposal", id)
		}
		return DisposalResponse{}, fmt.Errorf("failed to load disposal: %w", err)
	}
	return toDisposalResponse(disposal), nil
}

func (s *disposalService) List(ctx context.Context, orgID, status string, page, limit int) ([]DisposalResponse, int64, error) {
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

	disposals, total, err := s.disposals.List(ctx, org, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list disposals: %w", err)
	}

	res := make([]DisposalResponse, 0, len(disposals))
	for i := range disposals {
		res = append(res, toDisposalResponse(&disposals[i]))
	}
	return res, total, nil
}

func toDisposalResponse(d *model.AssetDisposal) DisposalResponse {
	return DisposalResponse{
		ID:                d.ID.String(),
		AssetID:           d.AssetID.String(),
		DisposalType:      d.DisposalType,
		DisposalDate:      d.DisposalDate.Format(time.RFC3339),
		DisposalValue:     d.DisposalValue.String(),
		Reason:            d.Reason,
		Status:            d.Status,
		ApprovedBy:        uuidPtrString(d.ApprovedBy),
		RejectedBy:        uuidPtrString(d.RejectedBy),
		RejectionReason:   d.RejectionReason,
		AccountingEntryID: uuidPtrString(d.AccountingEntryID),
	}
}
