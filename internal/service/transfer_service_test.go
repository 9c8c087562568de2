package service

import (
	"context"
	"testing"

	"assetflow/internal/model"
	"assetflow/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransferFixture() (*fakeTransferRepo, *fakeAssetRepo, TransferService) {
	transfers := newFakeTransferRepo()
	assets := newFakeAssetRepo()
	registry := NewAssetService(assets)
	svc := NewTransferService(transfers, assets, registry, &fakeTxManager{}, nil)
	return transfers, assets, svc
}

func seedAsset(t *testing.T, assets *fakeAssetRepo, org uuid.UUID, deptID *uuid.UUID) *model.Asset {
	t.Helper()
	asset := &model.Asset{
		ID:             uuid.New(),
		OrganizationID: org,
		Code:           "AST-" + uuid.NewString()[:8],
		Name:           "Laptop",
		Location:       "HQ floor 2",
		Status:         model.AssetStatusActive,
		DepartmentID:   deptID,
		Version:        1,
	}
	require.NoError(t, assets.Create(context.Background(), asset))
	return asset
}

func TestRequestTransfer_Department(t *testing.T) {
	org := uuid.New()
	fromDept, toDept := uuid.New(), uuid.New()
	_, assets, svc := newTransferFixture()
	asset := seedAsset(t, assets, org, &fromDept)

	resp, err := svc.Request(context.Background(), org.String(), RequestTransferRequest{
		AssetID:          asset.ID.String(),
		TransferType:     model.TransferTypeDepartment,
		FromDepartmentID: fromDept.String(),
		ToDepartmentID:   toDept.String(),
		Reason:           "team relocation",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TransferPending, resp.Status)
	assert.Equal(t, fromDept.String(), *resp.FromDepartmentID)
	assert.Equal(t, toDept.String(), *resp.ToDepartmentID)

	// Requesting a transfer must not touch the asset.
	stored, err := assets.FindByID(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AssetStatusActive, stored.Status)
	assert.Equal(t, fromDept, *stored.DepartmentID)
}

func TestRequestTransfer_SameEndpointRejected(t *testing.T) {
	org := uuid.New()
	dept := uuid.New()
	_, assets, svc := newTransferFixture()
	asset := seedAsset(t, assets, org, &dept)

	_, err := svc.Request(context.Background(), org.String(), RequestTransferRequest{
		AssetID:          asset.ID.String(),
		TransferType:     model.TransferTypeDepartment,
		FromDepartmentID: dept.String(),
		ToDepartmentID:   dept.String(),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRequestTransfer_MissingEndpoint(t *testing.T) {
	org := uuid.New()
	dept := uuid.New()
	_, assets, svc := newTransferFixture()
	asset := seedAsset(t, assets, org, &dept)

	_, err := svc.Request(context.Background(), org.String(), RequestTransferRequest{
		AssetID:          asset.ID.String(),
		TransferType:     model.TransferTypeUser,
		FromUserID:       uuid.NewString(),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRequestTransfer_AssetNotFound(t *testing.T) {
	org := uuid.New()
	_, _, svc := newTransferFixture()

	_, err := svc.Request(context.Background(), org.String(), RequestTransferRequest{
		AssetID:          uuid.NewString(),
		TransferType:     model.TransferTypeDepartment,
		FromDepartmentID: uuid.NewString(),
		ToDepartmentID:   uuid.NewString(),
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestApproveTransfer_MovesAsset(t *testing.T) {
	org := uuid.New()
	fromDept, toDept := uuid.New(), uuid.New()
	approver := uuid.New()
	_, assets, svc := newTransferFixture()
	asset := seedAsset(t, assets, org, &fromDept)

	created, err := svc.Request(context.Background(), org.String(), RequestTransferRequest{
		AssetID:          asset.ID.String(),
		TransferType:     model.TransferTypeDepartment,
		FromDepartmentID: fromDept.String(),
		ToDepartmentID:   toDept.String(),
	})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), created.ID, approver.String())
	require.NoError(t, err)
	assert.Equal(t, model.TransferApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, approver.String(), *approved.ApprovedBy)

	stored, err := assets.FindByID(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, toDept, *stored.DepartmentID)
	assert.Equal(t, model.AssetStatusActive, stored.Status)
}

func TestApproveTransfer_AssetMustBeTransferable(t *testing.T) {
	org := uuid.New()
	fromDept, toDept := uuid.New(), uuid.New()
	_, assets, svc := newTransferFixture()
	asset := seedAsset(t, assets, org, &fromDept)

	created, err := svc.Request(context.Background(), org.String(), RequestTransferRequest{
		AssetID:          asset.ID.String(),
		TransferType:     model.TransferTypeDepartment,
		FromDepartmentID: fromDept.String(),
		ToDepartmentID:   toDept.String(),
	})
	require.NoError(t, err)

	// The asset gets parked in maintenance while the request is pending.
	registry := NewAssetService(assets)
	_, err = registry.ChangeStatus(context.Background(), asset.ID, model.AssetStatusInMaintenance)
	require.NoError(t, err)

	// Approval routes the asset through TRANSFERRED, which is unreachable
	// from IN_MAINTENANCE, so the approval fails and nothing moves.
	_, err = svc.Approve(context.Background(), created.ID, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	pending, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TransferPending, pending.Status)

	stored, err := assets.FindByID(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AssetStatusInMaintenance, stored.Status)
	assert.Equal(t, fromDept, *stored.DepartmentID)
}

func TestApproveTransfer_RoutesThroughTransferred(t *testing.T) {
	org := uuid.New()
	fromDept, toDept := uuid.New(), uuid.New()
	_, assets, svc := newTransferFixture()
	asset := seedAsset(t, assets, org, &fromDept)

	created, err := svc.Request(context.Background(), org.String(), RequestTransferRequest{
		AssetID:          asset.ID.String(),
		TransferType:     model.TransferTypeDepartment,
		FromDepartmentID: fromDept.String(),
		ToDepartmentID:   toDept.String(),
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID, uuid.NewString())
	require.NoError(t, err)

	// Two registry writes inside the approval: ACTIVE -> TRANSFERRED, then
	// Reassign settling on ACTIVE. Each bumps the lock version.
	stored, err := assets.FindByID(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AssetStatusActive, stored.Status)
	assert.Equal(t, asset.Version+2, stored.Version)
}

func TestApproveTransfer_OnlyFromPending(t *testing.T) {
	org := uuid.New()
	fromDept, toDept := uuid.New(), uuid.New()
	_, assets, svc := newTransferFixture()
	asset := seedAsset(t, assets, org, &fromDept)

	created, err := svc.Request(context.Background(), org.String(), RequestTransferRequest{
		AssetID:          asset.ID.String(),
		TransferType:     model.TransferTypeDepartment,
		FromDepartmentID: fromDept.String(),
		ToDepartmentID:   toDept.String(),
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID, uuid.NewString())
	require.NoError(t, err)

	// A second approval hits a terminal status.
	_, err = svc.Approve(context.Background(), created.ID, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestCancelTransfer(t *testing.T) {
	org := uuid.New()
	fromDept, toDept := uuid.New(), uuid.New()
	_, assets, svc := newTransferFixture()
	asset := seedAsset(t, assets, org, &fromDept)

	created, err := svc.Request(context.Background(), org.String(), RequestTransferRequest{
		AssetID:          asset.ID.String(),
		TransferType:     model.TransferTypeDepartment,
		FromDepartmentID: fromDept.String(),
		ToDepartmentID:   toDept.String(),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	cancelled, err := svc.Cancel(context.Background(), created.ID, "requested in error")
	require.NoError(t, err)
	assert.Equal(t, model.TransferCancelled, cancelled.Status)
	assert.Equal(t, "requested in error", cancelled.CancelReason)

	// Cancellation leaves the asset exactly where it was.
	stored, err := assets.FindByID(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, fromDept, *stored.DepartmentID)

	// And the cancelled transfer cannot be approved afterwards.
	_, err = svc.Approve(context.Background(), created.ID, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}
