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

func TestCreateAsset(t *testing.T) {
	org := uuid.New()
	assets := newFakeAssetRepo()
	svc := NewAssetService(assets)

	created, err := svc.CreateAsset(context.Background(), org.String(), CreateAssetRequest{
		Name:     "Forklift 3t",
		Code:     "FL-0042",
		Category: "VEHICLE",
		Location: "Warehouse B",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AssetStatusActive, created.Status)
	assert.Equal(t, "FL-0042", created.Code)
	assert.Nil(t, created.DepartmentID)

	stored, err := assets.FindByID(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
}

func TestCreateAsset_DuplicateCode(t *testing.T) {
	org := uuid.New()
	assets := newFakeAssetRepo()
	svc := NewAssetService(assets)

	req := CreateAssetRequest{Name: "Forklift 3t", Code: "FL-0042"}
	_, err := svc.CreateAsset(context.Background(), org.String(), req)
	require.NoError(t, err)

	_, err = svc.CreateAsset(context.Background(), org.String(), req)
	assert.ErrorIs(t, err, apperr.ErrDuplicateCode)

	// The same code under a different organization is fine.
	_, err = svc.CreateAsset(context.Background(), uuid.NewString(), req)
	assert.NoError(t, err)
}

func TestCreateAsset_InvalidIDs(t *testing.T) {
	assets := newFakeAssetRepo()
	svc := NewAssetService(assets)

	_, err := svc.CreateAsset(context.Background(), "not-a-uuid", CreateAssetRequest{Name: "x", Code: "C-1"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateAsset(context.Background(), uuid.NewString(), CreateAssetRequest{
		Name:         "x",
		Code:         "C-2",
		DepartmentID: "bogus",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGetAsset_NotFound(t *testing.T) {
	svc := NewAssetService(newFakeAssetRepo())

	_, err := svc.GetAsset(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestChangeStatus(t *testing.T) {
	org := uuid.New()
	assets := newFakeAssetRepo()
	svc := NewAssetService(assets)
	asset := seedAsset(t, assets, org, nil)

	updated, err := svc.ChangeStatus(context.Background(), asset.ID, model.AssetStatusInMaintenance)
	require.NoError(t, err)
	assert.Equal(t, model.AssetStatusInMaintenance, updated.Status)

	// Each accepted transition bumps the optimistic lock version.
	stored, err := assets.FindByID(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.Version+1, stored.Version)

	// IN_MAINTENANCE can only return to ACTIVE.
	_, err = svc.ChangeStatus(context.Background(), asset.ID, model.AssetStatusDisposed)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)

	_, err = svc.ChangeStatus(context.Background(), asset.ID, model.AssetStatusActive)
	require.NoError(t, err)
}

func TestChangeStatus_DisposedIsTerminal(t *testing.T) {
	org := uuid.New()
	assets := newFakeAssetRepo()
	svc := NewAssetService(assets)
	asset := seedAsset(t, assets, org, nil)

	_, err := svc.ChangeStatus(context.Background(), asset.ID, model.AssetStatusDisposed)
	require.NoError(t, err)

	for _, target := range []string{
		model.AssetStatusActive,
		model.AssetStatusInMaintenance,
		model.AssetStatusTransferred,
	} {
		_, err := svc.ChangeStatus(context.Background(), asset.ID, target)
		assert.ErrorIs(t, err, apperr.ErrInvalidState, "DISPOSED -> %s must be rejected", target)
	}
}

func TestReassign_ReturnsTransferredAssetToActive(t *testing.T) {
	org := uuid.New()
	assets := newFakeAssetRepo()
	svc := NewAssetService(assets)
	asset := seedAsset(t, assets, org, nil)

	_, err := svc.ChangeStatus(context.Background(), asset.ID, model.AssetStatusTransferred)
	require.NoError(t, err)

	dest := uuid.New()
	updated, err := svc.Reassign(context.Background(), asset.ID, &dest, nil)
	require.NoError(t, err)
	assert.Equal(t, model.AssetStatusActive, updated.Status)
	require.NotNil(t, updated.DepartmentID)
	assert.Equal(t, dest, *updated.DepartmentID)
}
