package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryTypeForDisposal(t *testing.T) {
	assert.Equal(t, EntryTypeDisposalGain, EntryTypeForDisposal(DisposalTypeSale))
	assert.Equal(t, EntryTypeDisposalLoss, EntryTypeForDisposal(DisposalTypeScrap))
	assert.Equal(t, EntryTypeDisposalLoss, EntryTypeForDisposal(DisposalTypeLoss))
	assert.Equal(t, EntryTypeDisposalLoss, EntryTypeForDisposal(DisposalTypeDonation))
}
