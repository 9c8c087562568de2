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
)

// DTOs

type RequestTransferRequest struct {
	AssetID          string `json:"asset_id" binding:"required"`
	TransferType     string `json:"transfer_type" binding:"required,oneof=DEPARTMENT USER"`
	FromDepartmentID string `json:"from_department_id"`
	ToDepartmentID   string `json:"to_department_id"`
	FromUserID       string `json:"from_user_id"`
	ToUserID         string `json:"to_user_id"`
	TransferDate     string `json:"transfer_date"` // RFC3339, defaults to now
	Reason           string `json:"reason"`
}

type TransferResponse struct {
	ID               string  `json:"id"`
	AssetID          string  `json:"asset_id"`
	TransferType     string  `json:"transfer_type"`
	FromDepartmentID *string `json:"from_department_id"`
	ToDepartmentID   *string `json:"to_department_id"`
	FromUserID       *string `json:"from_user_id"`
	ToUserID         *string `json:"to_user_id"`
	TransferDate     string  `json:"transfer_date"`
	Reason           string  `json:"reason"`
	Status           string  `json:"status"`
	ApprovedBy       *string `json:"approved_by"`
	CancelReason     string  `json:"cancel_reason,omitempty"`
}

// TransferService is the workflow moving an asset between departments or
// users. It has no financial side effects.
type TransferService interface {
	Request(ctx context.Context, orgID string, req RequestTransferRequest) (TransferResponse, error)
	Approve(ctx context.Context, id, approverID string) (TransferResponse, error)
	Cancel(ctx context.Context, id, reason string) (TransferResponse, error)
	Get(ctx context.Context, id string) (TransferResponse, error)
	List(ctx context.Context, orgID, status string, page, limit int) ([]TransferResponse, int64, error)
}

type transferService struct {
	transfers repository.TransferRepository
	assets    repository.AssetRepository
	registry  AssetService
	txManager repository.TransactionManager
	hub       *ws.Hub
}

func NewTransferService(
	transfers repository.TransferRepository,
	assets repository.AssetRepository,
	registry AssetService,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) TransferService {
	return &transferService{
		transfers: transfers,
		assets:    assets,
		registry:  registry,
		txManager: txManager,
		hub:       hub,
	}
}

func (s *transferService) Request(ctx context.Context, orgID string, req RequestTransferRequest) (TransferResponse, error) {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return TransferResponse{}, apperr.Validation("invalid organization id %q", orgID)
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return TransferResponse{}, apperr.Validation("invalid asset id %q", req.AssetID)
	}

	if _, err := s.assets.FindByID(ctx, assetID); err != nil {
		if repository.IsNotFound(err) {
			return TransferResponse{}, apperr.NotFound("asset", req.AssetID)
		}
		return TransferResponse{}, fmt.Errorf("failed to load asset: %w", err)
	}

	date := time.Now()
	if req.TransferDate != "" {
		parsed, parseErr := time.Parse(time.RFC3339, req.TransferDate)
		if parseErr != nil {
			return TransferResponse{}, apperr.Validation("invalid transfer date %q", req.TransferDate)
		}
		date = parsed
	}

	var transfer *model.AssetTransfer
	switch req.TransferType {
	case model.TransferTypeDepartment:
		from, to, pairErr := parseEndpointPair(req.FromDepartmentID, req.ToDepartmentID, "department")
		if pairErr != nil {
			return TransferResponse{}, pairErr
		}
		transfer, err = model.NewDepartmentTransfer(uuid.New(), org, assetID, from, to, date, req.Reason)
	case model.TransferTypeUser:
		from, to, pairErr := parseEndpointPair(req.FromUserID, req.ToUserID, "user")
		if pairErr != nil {
			return TransferResponse{}, pairErr
		}
		transfer, err = model.NewUserTransfer(uuid.New(), org, assetID, from, to, date, req.Reason)
	default:
		return TransferResponse{}, apperr.Validation("unknown transfer type %q", req.TransferType)
	}
	if err != nil {
		return TransferResponse{}, err
	}

	if err := s.transfers.Create(ctx, transfer); err != nil {
		return TransferResponse{}, fmt.Errorf("failed to create transfer: %w", err)
	}

	return toTransferResponse(transfer), nil
}

func (s *transferService) Approve(ctx context.Context, id, approverID string) (TransferResponse, error) {
	transferID, err := uuid.Parse(id)
	if err != nil {
		return TransferResponse{}, apperr.Validation("invalid transfer id %q", id)
	}
	approver, err := uuid.Parse(approverID)
	if err != nil {
		return TransferResponse{}, apperr.Validation("invalid approver id %q", approverID)
	}

	var transfer *model.AssetTransfer
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		transfer, txErr = s.transfers.FindByIDForUpdate(txCtx, transferID)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("transfer", id)
			}
			return fmt.Errorf("failed to load transfer: %w", txErr)
		}

		if transfer.Status != model.TransferPending {
			return apperr.InvalidState("transfer", transfer.Status, "approve")
		}

		now := time.Now()
		transfer.Status = model.TransferApproved
		transfer.ApprovedBy = &approver
		transfer.ApprovedAt = &now

		// The asset passes through TRANSFERRED before Reassign settles it back
		// on ACTIVE, so an asset parked in maintenance cannot be moved: the
		// transition table rejects it and the whole approval rolls back.
		if _, txErr = s.registry.ChangeStatus(txCtx, transfer.AssetID, model.AssetStatusTransferred); txErr != nil {
			return txErr
		}
		if _, txErr = s.registry.Reassign(txCtx, transfer.AssetID, transfer.ToDepartmentID, transfer.ToUserID); txErr != nil {
			return txErr
		}

		if txErr = s.transfers.Update(txCtx, transfer); txErr != nil {
			return fmt.Errorf("failed to update transfer: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return TransferResponse{}, err
	}

	notify(s.hub, EventTransferApproved, map[string]interface{}{
		"transfer_id": transfer.ID.String(),
		"asset_id":    transfer.AssetID.String(),
	})

	return toTransferResponse(transfer), nil
}

func (s *transferService) Cancel(ctx context.Context, id, reason string) (TransferResponse, error) {
	transferID, err := uuid.Parse(id)
	if err != nil {
		return TransferResponse{}, apperr.Validation("invalid transfer id %q", id)
	}
	if reason == "" {
		return TransferResponse{}, apperr.Validation("cancellation reason is required")
	}

	var transfer *model.AssetTransfer
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		transfer, txErr = s.transfers.FindByIDForUpdate(txCtx, transferID)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("transfer", id)
			}
			return fmt.Errorf("failed to load transfer: %w", txErr)
		}

		if transfer.Status != model.TransferPending {
			return apperr.InvalidState("transfer", transfer.Status, "cancel")
		}

		transfer.Status = model.TransferCancelled
		transfer.CancelReason = reason

		if txErr = s.transfers.Update(txCtx, transfer); txErr != nil {
			return fmt.Errorf("failed to update transfer: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return TransferResponse{}, err
	}

	return toTransferResponse(transfer), nil
}

func (s *transferService) Get(ctx context.Context, id string) (TransferResponse, error) {
	transferID, err := uuid.Parse(id)
	if err != nil {
		return TransferResponse{}, apperr.Validation("invalid transfer id %q", id)
	}
	transfer, err := s.transfers.FindByID(ctx, transferID)
	if err != nil {
		if repository.IsNotFound(err) {
			return TransferResponse{}, apperr.NotFound("transfer", id)
		}
		return TransferResponse{}, fmt.Errorf("failed to load transfer: %w", err)
	}
	return toTransferResponse(transfer), nil
}

func (s *transferService) List(ctx context.Context, orgID, status string, page, limit int) ([]TransferResponse, int64, error) {
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

	transfers, total, err := s.transfers.List(ctx, org, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfers: %w", err)
	}

	res := make([]TransferResponse, 0, len(transfers))
	for i := range transfers {
		res = append(res, toTransferResponse(&transfers[i]))
	}
	return res, total, nil
}

// parseEndpointPair parses both endpoint ids of a transfer, rejecting a
// missing or malformed half before any record is created.
func parseEndpointPair(fromStr, toStr, kind string) (uuid.UUID, uuid.UUID, error) {
	if fromStr == "" || toStr == "" {
		return uuid.Nil, uuid.Nil, apperr.Validation("%s transfer requires from_%s_id and to_%s_id", kind, kind, kind)
	}
	from, err := uuid.Parse(fromStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.Validation("invalid source %s id %q", kind, fromStr)
	}
	to, err := uuid.Parse(toStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.Validation("invalid destination %s id %q", kind, toStr)
	}
	return from, to, nil
}

func toTransferResponse(t *model.AssetTransfer) TransferResponse {
	resp := TransferResponse{
		ID:           t.ID.String(),
		AssetID:      t.AssetID.String(),
		TransferType: t.TransferType,
		TransferDate: t.TransferDate.Format(time.RFC3339),
		Reason:       t.Reason,
		Status:       t.Status,
		CancelReason: t.CancelReason,
	}
	resp.FromDepartmentID = uuidPtrString(t.FromDepartmentID)
	resp.ToDepartmentID = uuidPtrString(t.ToDepartmentID)
	resp.FromUserID = uuidPtrString(t.FromUserID)
	resp.ToUserID = uuidPtrString(t.ToUserID)
	resp.ApprovedBy = uuidPtrString(t.ApprovedBy)
	return resp
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
