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

func newCheckFixture() (*fakeCheckRepo, *fakeAssetRepo, InventoryCheckService) {
	checks := newFakeCheckRepo()
	assets := newFakeAssetRepo()
	svc := NewInventoryCheckService(checks, assets, &fakeTxManager{}, nil)
	return checks, assets, svc
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestStartCheck_SeedsDetails(t *testing.T) {
	org := uuid.New()
	checker := uuid.New()
	_, assets, svc := newCheckFixture()
	a1 := seedAsset(t, assets, org, nil)
	a2 := seedAsset(t, assets, org, nil)

	check, err := svc.StartCheck(context.Background(), org.String(), checker.String(), StartCheckRequest{
		AssetIDs: []string{a1.ID.String(), a2.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, model.CheckInProgress, check.Status)
	require.Len(t, check.Details, 2)

	// Expected values snapshot the registry state at start time.
	for _, d := range check.Details {
		assert.Equal(t, model.AssetStatusActive, d.ExpectedStatus)
		assert.Equal(t, "HQ floor 2", d.ExpectedLocation)
		assert.Nil(t, d.IsFound)
	}
}

func TestStartCheck_RejectsDuplicatesAndUnknownAssets(t *testing.T) {
	org := uuid.New()
	_, assets, svc := newCheckFixture()
	a1 := seedAsset(t, assets, org, nil)

	_, err := svc.StartCheck(context.Background(), org.String(), uuid.NewString(), StartCheckRequest{
		AssetIDs: []string{a1.ID.String(), a1.ID.String()},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.StartCheck(context.Background(), org.String(), uuid.NewString(), StartCheckRequest{
		AssetIDs: []string{uuid.NewString()},
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecordDetail_MatchSemantics(t *testing.T) {
	org := uuid.New()
	_, assets, svc := newCheckFixture()
	found := seedAsset(t, assets, org, nil)
	moved := seedAsset(t, assets, org, nil)
	missing := seedAsset(t, assets, org, nil)

	check, err := svc.StartCheck(context.Background(), org.String(), uuid.NewString(), StartCheckRequest{
		AssetIDs: []string{found.ID.String(), moved.ID.String(), missing.ID.String()},
	})
	require.NoError(t, err)

	// Found in the expected status: match.
	d, err := svc.RecordDetail(context.Background(), check.ID, RecordDetailRequest{
		AssetID:      found.ID.String(),
		IsFound:      boolPtr(true),
		ActualStatus: strPtr(model.AssetStatusActive),
	})
	require.NoError(t, err)
	assert.True(t, d.IsMatch)

	// Found but in another status: recorded, not a match.
	d, err = svc.RecordDetail(context.Background(), check.ID, RecordDetailRequest{
		AssetID:      moved.ID.String(),
		IsFound:      boolPtr(true),
		ActualStatus: strPtr(model.AssetStatusInMaintenance),
	})
	require.NoError(t, err)
	assert.False(t, d.IsMatch)

	// Not found: never a match, whatever else is reported.
	d, err = svc.RecordDetail(context.Background(), check.ID, RecordDetailRequest{
		AssetID: missing.ID.String(),
		IsFound: boolPtr(false),
		Notes:   "not at expected location",
	})
	require.NoError(t, err)
	assert.False(t, d.IsMatch)
}

func TestRecordDetail_WriteOnce(t *testing.T) {
	org := uuid.New()
	_, assets, svc := newCheckFixture()
	asset := seedAsset(t, assets, org, nil)

	check, err := svc.StartCheck(context.Background(), org.String(), uuid.NewString(), StartCheckRequest{
		AssetIDs: []string{asset.ID.String()},
	})
	require.NoError(t, err)

	_, err = svc.RecordDetail(context.Background(), check.ID, RecordDetailRequest{
		AssetID:      asset.ID.String(),
		IsFound:      boolPtr(true),
		ActualStatus: strPtr(model.AssetStatusActive),
	})
	require.NoError(t, err)

	_, err = svc.RecordDetail(context.Background(), check.ID, RecordDetailRequest{
		AssetID: asset.ID.String(),
		IsFound: boolPtr(false),
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestFinishCheck_FreezesDetails(t *testing.T) {
	org := uuid.New()
	_, assets, svc := newCheckFixture()
	asset := seedAsset(t, assets, org, nil)

	check, err := svc.StartCheck(context.Background(), org.String(), uuid.NewString(), StartCheckRequest{
		AssetIDs: []string{asset.ID.String()},
	})
	require.NoError(t, err)

	finished, err := svc.Finish(context.Background(), check.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CheckFinished, finished.Status)

	// No recording after finish, and no double finish.
	_, err = svc.RecordDetail(context.Background(), check.ID, RecordDetailRequest{
		AssetID: asset.ID.String(),
		IsFound: boolPtr(true),
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
	_, err = svc.Finish(context.Background(), check.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestFindDiscrepancies(t *testing.T) {
	org := uuid.New()
	_, assets, svc := newCheckFixture()
	ok := seedAsset(t, assets, org, nil)
	missing := seedAsset(t, assets, org, nil)
	unrecorded := seedAsset(t, assets, org, nil)

	check, err := svc.StartCheck(context.Background(), org.String(), uuid.NewString(), StartCheckRequest{
		AssetIDs: []string{ok.ID.String(), missing.ID.String(), unrecorded.ID.String()},
	})
	require.NoError(t, err)

	_, err = svc.RecordDetail(context.Background(), check.ID, RecordDetailRequest{
		AssetID:      ok.ID.String(),
		IsFound:      boolPtr(true),
		ActualStatus: strPtr(model.AssetStatusActive),
	})
	require.NoError(t, err)
	_, err = svc.RecordDetail(context.Background(), check.ID, RecordDetailRequest{
		AssetID: missing.ID.String(),
		IsFound: boolPtr(false),
	})
	require.NoError(t, err)

	// The matched asset is absent; the missing and never-recorded ones appear.
	discrepancies, err := svc.FindDiscrepancies(context.Background(), check.ID)
	require.NoError(t, err)
	require.Len(t, discrepancies, 2)
	ids := map[string]bool{}
	for _, d := range discrepancies {
		ids[d.AssetID] = true
	}
	assert.True(t, ids[missing.ID.String()])
	assert.True(t, ids[unrecorded.ID.String()])
	assert.False(t, ids[ok.ID.String()])

	// Reading discrepancies mutates nothing.
	stored, err := assets.FindByID(context.Background(), missing.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AssetStatusActive, stored.Status)
}
