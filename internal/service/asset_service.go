package service

import (
	"context"
	"fmt"

	"assetflow/internal/model"
	"assetflow/internal/repository"
	"assetflow/pkg/apperr"

	"github.com/google/uuid"
)

// DTOs

type CreateAssetRequest struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	DepartmentID string `json:"department_id"`
	UserID       string `json:"user_id"`
}

type AssetResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Location     string  `json:"location"`
	Status       string  `json:"status"`
	DepartmentID *string `json:"department_id"`
	UserID       *string `json:"user_id"`
}

// AssetService is the registry owning asset identity and lifecycle status.
// ChangeStatus and Reassign are invoked only by the workflow services; the
// HTTP layer never writes status, it drives the transfer/disposal/maintenance
// workflows instead.
type AssetService interface {
	CreateAsset(ctx context.Context, orgID string, req CreateAssetRequest) (AssetResponse, error)
	GetAsset(ctx context.Context, id string) (AssetResponse, error)
	ListAssets(ctx context.Context, orgID, status string, page, limit int) ([]AssetResponse, int64, error)

	ChangeStatus(ctx context.Context, assetID uuid.UUID, newStatus string) (*model.Asset, error)
	Reassign(ctx context.Context, assetID uuid.UUID, departmentID, userID *uuid.UUID) (*model.Asset, error)
}

type assetService struct {
	assets repository.AssetRepository
}

func NewAssetService(assets repository.AssetRepository) AssetService {
	return &assetService{assets: assets}
}

func (s *assetService) CreateAsset(ctx context.Context, orgID string, req CreateAssetRequest) (AssetResponse, error) {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return AssetResponse{}, apperr.Validation("invalid organization id %q", orgID)
	}

	if _, err := s.assets.FindByCode(ctx, org, req.Code); err == nil {
		return AssetResponse{}, apperr.DuplicateCode(req.Code)
	} else if !repository.IsNotFound(err) {
		return AssetResponse{}, fmt.Errorf("failed to check asset code: %w", err)
	}

	asset := &model.Asset{
		ID:             uuid.New(),
		OrganizationID: org,
		Code:           req.Code,
		Name:           req.Name,
		Category:       req.Category,
		Location:       req.Location,
		Status:         model.AssetStatusActive,
		Version:        1,
	}
	if req.DepartmentID != "" {
		dept, parseErr := uuid.Parse(req.DepartmentID)
		if parseErr != nil {
			return AssetResponse{}, apperr.Validation("invalid department id %q", req.DepartmentID)
		}
		asset.DepartmentID = &dept
	}
	if req.UserID != "" {
		user, parseErr := uuid.Parse(req.UserID)
		if parseErr != nil {
			return AssetResponse{}, apperr.Validation("invalid user id %q", req.UserID)
		}
		asset.UserID = &user
	}

	if err := s.assets.Create(ctx, asset); err != nil {
		return AssetResponse{}, fmt.Errorf("failed to create asset: %w", err)
	}

	return toAssetResponse(asset), nil
}

func (s *assetService) GetAsset(ctx context.Context, id string) (AssetResponse, error) {
	assetID, err := uuid.Parse(id)
	if err != nil {
		return AssetResponse{}, apperr.Validation("invalid asset id %q", id)
	}

	asset, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		if repository.IsNotFound(err) {
			return AssetResponse{}, apperr.NotFound("asset", id)
		}
		return AssetResponse{}, fmt.Errorf("failed to load asset: %w", err)
	}

	return toAssetResponse(asset), nil
}

func (s *assetService) ListAssets(ctx context.Context, orgID, status string, page, limit int) ([]AssetResponse, int64, error) {
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

	assets, total, err := s.assets.List(ctx, org, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}

	res := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		res = append(res, toAssetResponse(&assets[i]))
	}
	return res, total, nil
}

// ChangeStatus applies one edge of the asset transition table. Called with a
// transaction context it joins the caller's transaction, so a workflow's
// status change commits together with the workflow's own record.
func (s *assetService) ChangeStatus(ctx context.Context, assetID uuid.UUID, newStatus string) (*model.Asset, error) {
	asset, err := s.assets.FindByIDForUpdate(ctx, assetID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("asset", assetID)
		}
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}

	if !model.CanTransitionAsset(asset.Status, newStatus) {
		return nil, apperr.InvalidState("asset", asset.Status, "move to "+newStatus)
	}

	asset.Status = newStatus
	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Reassign moves the asset's owning department/user references and returns a
// mid-transfer asset to ACTIVE. Used by the transfer workflow on approval.
func (s *assetService) Reassign(ctx context.Context, assetID uuid.UUID, departmentID, userID *uuid.UUID) (*model.Asset, error) {
	asset, err := s.assets.FindByIDForUpdate(ctx, assetID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("asset", assetID)
		}
		return nil, fmt.Errorf("failed to load asset: %w", err)
	}

	if departmentID != nil {
		asset.DepartmentID = departmentID
	}
	if userID != nil {
		asset.UserID = userID
	}
	if asset.Status == model.AssetStatusTransferred {
		asset.Status = model.AssetStatusActive
	}

	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func toAssetResponse(a *model.Asset) AssetResponse {
	resp := AssetResponse{
		ID:       a.ID.String(),
		Code:     a.Code,
		Name:     a.Name,
		Category: a.Category,
		Location: a.Location,
		Status:   a.Status,
	}
	if a.DepartmentID != nil {
		s := a.DepartmentID.String()
		resp.DepartmentID = &s
	}
	if a.UserID != nil {
		s := a.UserID.String()
		resp.UserID = &s
	}
	return resp
}
