package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DisposalType enum constants
const (
	DisposalTypeSale     = "SALE"
	DisposalTypeScrap    = "SCRAP"
	DisposalTypeLoss     = "LOSS"
	DisposalTypeDonation = "DONATION"
)

// DisposalStatus enum constants
const (
	DisposalPending   = "PENDING"
	DisposalApproved  = "APPROVED"
	DisposalRejected  = "REJECTED"
	DisposalCancelled = "CANCELLED"
)

// AssetDisposal records the retirement of an asset. Approval is terminal and
// irreversible; the accounting entry is created exactly once, at approval,
// and its id is stored on the record.
type AssetDisposal struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	AssetID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"asset_id"`
	DisposalType      string          `gorm:"type:varchar(20);not null" json:"disposal_type"` // SALE, SCRAP, LOSS, DONATION
	DisposalDate      time.Time       `gorm:"not null" json:"disposal_date"`
	DisposalValue     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"disposal_value"`
	Reason            string          `gorm:"type:text" json:"reason"`
	Status            string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ApprovedBy        *uuid.UUID      `gorm:"type:uuid" json:"approved_by"`
	ApprovedAt        *time.Time      `json:"approved_at"`
	RejectedBy        *uuid.UUID      `gorm:"type:uuid" json:"rejected_by"`
	RejectionReason   string          `gorm:"type:text" json:"rejection_reason"`
	AccountingEntryID *uuid.UUID      `gorm:"type:uuid" json:"accounting_entry_id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// EntryTypeForDisposal maps a disposal type to the accounting entry type
// posted on approval. A sale realizes proceeds; everything else is written
// off as a loss.
func EntryTypeForDisposal(disposalType string) string {
	if disposalType == DisposalTypeSale {
		return EntryTypeDisposalGain
	}
	return EntryTypeDisposalLoss
}
