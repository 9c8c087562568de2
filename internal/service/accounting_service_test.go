package service

import (
	"context"
	"testing"
	"time"

	"assetflow/internal/model"
	"assetflow/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEntry(t *testing.T) {
	entries := newFakeAccountingRepo()
	svc := NewAccountingService(entries)

	org := uuid.New()
	assetID := uuid.New()
	refID := uuid.New()
	entry, err := svc.Record(context.Background(), RecordEntryCommand{
		OrganizationID: org,
		EntryType:      model.EntryTypeMaintenanceExpense,
		Amount:         decimal.RequireFromString("120.50"),
		EntryDate:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Description:    "quarterly service",
		AssetID:        &assetID,
		ReferenceType:  model.RefTypeMaintenance,
		ReferenceID:    &refID,
		CreatedBy:      uuid.New(),
	})
	require.NoError(t, err)
	require.NotNil(t, entry.ReferenceType)
	assert.Equal(t, model.RefTypeMaintenance, *entry.ReferenceType)

	got, err := svc.Get(context.Background(), entry.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "120.5", got.Amount)
	assert.Equal(t, "quarterly service", got.Description)
}

func TestRecordEntry_Validation(t *testing.T) {
	svc := NewAccountingService(newFakeAccountingRepo())

	_, err := svc.Record(context.Background(), RecordEntryCommand{
		OrganizationID: uuid.New(),
		CreatedBy:      uuid.New(),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Record(context.Background(), RecordEntryCommand{
		OrganizationID: uuid.New(),
		EntryType:      model.EntryTypeDepreciation,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGetEntry_NotFound(t *testing.T) {
	svc := NewAccountingService(newFakeAccountingRepo())

	_, err := svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
