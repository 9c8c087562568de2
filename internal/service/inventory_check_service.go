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

type StartCheckRequest struct {
	AssetIDs  []string `json:"asset_ids" binding:"required,min=1"`
	CheckDate string   `json:"check_date"` // RFC3339, defaults to now
	Notes     string   `json:"notes"`
}

type RecordDetailRequest struct {
	AssetID        string  `json:"asset_id" binding:"required"`
	IsFound        *bool   `json:"is_found" binding:"required"`
	ActualStatus   *string `json:"actual_status"`
	ActualLocation *string `json:"actual_location"`
	Notes          string  `json:"notes"`
}

type InventoryDetailResponse struct {
	ID               string  `json:"id"`
	AssetID          string  `json:"asset_id"`
	ExpectedLocation string  `json:"expected_location"`
	ExpectedStatus   string  `json:"expected_status"`
	ActualLocation   *string `json:"actual_location"`
	ActualStatus     *string `json:"actual_status"`
	IsFound          *bool   `json:"is_found"`
	IsMatch          bool    `json:"is_match"`
	Notes            string  `json:"notes,omitempty"`
}

type InventoryCheckResponse struct {
	ID        string                    `json:"id"`
	CheckDate string                    `json:"check_date"`
	CheckedBy string                    `json:"checked_by"`
	Status    string                    `json:"status"`
	Notes     string                    `json:"notes,omitempty"`
	Details   []InventoryDetailResponse `json:"details,omitempty"`
}

// InventoryCheckService compares expected vs. observed state during a
// physical count. It records observations and surfaces discrepancies; it
// never mutates asset state itself; corrective action is a separate human
// decision feeding the transfer or disposal workflow.
type InventoryCheckService interface {
	StartCheck(ctx context.Context, orgID, checkerID string, req StartCheckRequest) (InventoryCheckResponse, error)
	RecordDetail(ctx context.Context, checkID string, req RecordDetailRequest) (InventoryDetailResponse, error)
	Finish(ctx context.Context, checkID string) (InventoryCheckResponse, error)
	Get(ctx context.Context, checkID string) (InventoryCheckResponse, error)
	FindDiscrepancies(ctx context.Context, checkID string) ([]InventoryDetailResponse, error)
	List(ctx context.Context, orgID, status string, page, limit int) ([]InventoryCheckResponse, int64, error)
}

type inventoryCheckService struct {
	checks    repository.InventoryCheckRepository
	assets    repository.AssetRepository
	txManager repository.TransactionManager
	hub       *ws.Hub
}

func NewInventoryCheckService(
	checks repository.InventoryCheckRepository,
	assets repository.AssetRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) InventoryCheckService {
	return &inventoryCheckService{
		checks:    checks,
		assets:    assets,
		txManager: txManager,
		hub:       hub,
	}
}

// StartCheck opens a check and seeds one detail per asset with the asset's
// last known location and status as the expected values.
func (s *inventoryCheckService) StartCheck(ctx context.Context, orgID, checkerID string, req StartCheckRequest) (InventoryCheckResponse, error) {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return InventoryCheckResponse{}, apperr.Validation("invalid organization id %q", orgID)
	}
	checker, err := uuid.Parse(checkerID)
	if err != nil {
		return InventoryCheckResponse{}, apperr.Validation("invalid checker id %q", checkerID)
	}
	if len(req.AssetIDs) == 0 {
		return InventoryCheckResponse{}, apperr.Validation("at least one asset is required")
	}

	date := time.Now()
	if req.CheckDate != "" {
		parsed, parseErr := time.Parse(time.RFC3339, req.CheckDate)
		if parseErr != nil {
			return InventoryCheckResponse{}, apperr.Validation("invalid check date %q", req.CheckDate)
		}
		date = parsed
	}

	check := &model.InventoryCheck{
		ID:             uuid.New(),
		OrganizationID: org,
		CheckDate:      date,
		CheckedBy:      checker,
		Status:         model.CheckInProgress,
		Notes:          req.Notes,
	}

	var details []model.InventoryDetail
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		seen := make(map[uuid.UUID]bool, len(req.AssetIDs))
		for _, idStr := range req.AssetIDs {
			assetID, parseErr := uuid.Parse(idStr)
			if parseErr != nil {
				return apperr.Validation("invalid asset id %q", idStr)
			}
			if seen[assetID] {
				return apperr.Validation("duplicate asset id %q", idStr)
			}
			seen[assetID] = true

			asset, findErr := s.assets.FindByID(txCtx, assetID)
			if findErr != nil {
				if repository.IsNotFound(findErr) {
					return apperr.NotFound("asset", idStr)
				}
				return fmt.Errorf("failed to load asset %s: %w", idStr, findErr)
			}

			details = append(details, model.InventoryDetail{
				ID:               uuid.New(),
				CheckID:          check.ID,
				AssetID:          asset.ID,
				ExpectedLocation: asset.Location,
				ExpectedStatus:   asset.Status,
			})
		}

		if createErr := s.checks.Create(txCtx, check); createErr != nil {
			return fmt.Errorf("failed to create inventory check: %w", createErr)
		}
		if createErr := s.checks.CreateDetails(txCtx, details); createErr != nil {
			return fmt.Errorf("failed to create check details: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return InventoryCheckResponse{}, err
	}

	return toCheckResponse(check, details), nil
}

// RecordDetail stores one physical observation. Each detail accepts exactly
// one recording, and only while the check is in progress.
func (s *inventoryCheckService) RecordDetail(ctx context.Context, checkID string, req RecordDetailRequest) (InventoryDetailResponse, error) {
	cid, err := uuid.Parse(checkID)
	if err != nil {
		return InventoryDetailResponse{}, apperr.Validation("invalid check id %q", checkID)
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return InventoryDetailResponse{}, apperr.Validation("invalid asset id %q", req.AssetID)
	}
	if req.IsFound == nil {
		return InventoryDetailResponse{}, apperr.Validation("is_found is required")
	}

	var detail *model.InventoryDetail
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		check, txErr := s.checks.FindByIDForUpdate(txCtx, cid)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("inventory check", checkID)
			}
			return fmt.Errorf("failed to load inventory check: %w", txErr)
		}
		if check.Status != model.CheckInProgress {
			return apperr.InvalidState("inventory check", check.Status, "record detail")
		}

		detail, txErr = s.checks.FindDetail(txCtx, cid, assetID)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("check detail for asset", req.AssetID)
			}
			return fmt.Errorf("failed to load check detail: %w", txErr)
		}
		if detail.Recorded() {
			return apperr.InvalidState("check detail", "recorded", "record again")
		}

		found := *req.IsFound
		detail.IsFound = &found
		detail.ActualStatus = req.ActualStatus
		detail.ActualLocation = req.ActualLocation
		detail.IsMatch = found && req.ActualStatus != nil && *req.ActualStatus == detail.ExpectedStatus
		if req.Notes != "" {
			detail.Notes = req.Notes
		}

		if txErr = s.checks.UpdateDetail(txCtx, detail); txErr != nil {
			return fmt.Errorf("failed to update check detail: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return InventoryDetailResponse{}, err
	}

	return toDetailResponse(detail), nil
}

// Finish closes the check. All details are frozen from here on.
func (s *inventoryCheckService) Finish(ctx context.Context, checkID string) (InventoryCheckResponse, error) {
	cid, err := uuid.Parse(checkID)
	if err != nil {
		return InventoryCheckResponse{}, apperr.Validation("invalid check id %q", checkID)
	}

	var check *model.InventoryCheck
	var details []model.InventoryDetail
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		check, txErr = s.checks.FindByIDForUpdate(txCtx, cid)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("inventory check", checkID)
			}
			return fmt.Errorf("failed to load inventory check: %w", txErr)
		}

		if check.Status != model.CheckInProgress {
			return apperr.InvalidState("inventory check", check.Status, "finish")
		}

		check.Status = model.CheckFinished
		if txErr = s.checks.Update(txCtx, check); txErr != nil {
			return fmt.Errorf("failed to update inventory check: %w", txErr)
		}

		details, txErr = s.checks.FindDetailsByCheckID(txCtx, cid)
		if txErr != nil {
			return fmt.Errorf("failed to load check details: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return InventoryCheckResponse{}, err
	}

	discrepancies := 0
	for i := range details {
		if details[i].Discrepant() {
			discrepancies++
		}
	}
	notify(s.hub, EventCheckFinished, map[string]interface{}{
		"check_id":      check.ID.String(),
		"assets":        len(details),
		"discrepancies": discrepancies,
	})

	return toCheckResponse(check, details), nil
}

func (s *inventoryCheckService) Get(ctx context.Context, checkID string) (InventoryCheckResponse, error) {
	cid, err := uuid.Parse(checkID)
	if err != nil {
		return InventoryCheckResponse{}, apperr.Validation("invalid check id %q", checkID)
	}
	check, err := s.checks.FindByID(ctx, cid)
	if err != nil {
		if repository.IsNotFound(err) {
			return InventoryCheckResponse{}, apperr.NotFound("inventory check", checkID)
		}
		return InventoryCheckResponse{}, fmt.Errorf("failed to load inventory check: %w", err)
	}
	details, err := s.checks.FindDetailsByCheckID(ctx, cid)
	if err != nil {
		return InventoryCheckResponse{}, fmt.Errorf("failed to load check details: %w", err)
	}
	return toCheckResponse(check, details), nil
}

// FindDiscrepancies returns the details where the asset was missing, never
// verified, or observed in a status other than the expected one. Pure read,
// no mutation.
func (s *inventoryCheckService) FindDiscrepancies(ctx context.Context, checkID string) ([]InventoryDetailResponse, error) {
	cid, err := uuid.Parse(checkID)
	if err != nil {
		return nil, apperr.Validation("invalid check id %q", checkID)
	}

	if _, err := s.checks.FindByID(ctx, cid); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("inventory check", checkID)
		}
		return nil, fmt.Errorf("failed to load inventory check: %w", err)
	}

	details, err := s.checks.FindDetailsByCheckID(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to load check details: %w", err)
	}

	res := make([]InventoryDetailResponse, 0)
	for i := range details {
		if details[i].Discrepant() {
			res = append(res, toDetailResponse(&details[i]))
		}
	}
	return res, nil
}

func (s *inventoryCheckService) List(ctx context.Context, orgID, status string, page, limit int) ([]InventoryCheckResponse, int64, error) {
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

	checks, total, err := s.checks.List(ctx, org, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory checks: %w", err)
	}

	res := make([]InventoryCheckResponse, 0, len(checks))
	for i := range checks {
		res = append(res, toCheckResponse(&checks[i], nil))
	}
	return res, total, nil
}

func toCheckResponse(c *model.InventoryCheck, details []model.InventoryDetail) InventoryCheckResponse {
	resp := InventoryCheckResponse{
		ID:        c.ID.String(),
		CheckDate: c.CheckDate.Format(time.RFC3339),
		CheckedBy: c.CheckedBy.String(),
		Status:    c.Status,
		Notes:     c.Notes,
	}
	for i := range details {
		resp.Details = append(resp.Details, toDetailResponse(&details[i]))
	}
	return resp
}

func toDetailResponse(d *model.InventoryDetail) InventoryDetailResponse {
	return InventoryDetailResponse{
		ID:               d.ID.String(),
		AssetID:          d.AssetID.String(),
		ExpectedLocation: d.ExpectedLocation,
		ExpectedStatus:   d.ExpectedStatus,
		ActualLocation:   d.ActualLocation,
		ActualStatus:     d.ActualStatus,
		IsFound:          d.IsFound,
		IsMatch:          d.IsMatch,
		Notes:            d.Notes,
	}
}
