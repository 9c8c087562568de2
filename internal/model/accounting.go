package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType enum constants
const (
	EntryTypeDisposalGain       = "DISPOSAL_GAIN"
	EntryTypeDisposalLoss       = "DISPOSAL_LOSS"
	EntryTypeMaintenanceExpense = "MAINTENANCE_EXPENSE"
	EntryTypeDepreciation       = "DEPRECIATION"
)

// ReferenceType enum constants, pointing back at the originating workflow record
const (
	RefTypeDisposal    = "ASSET_DISPOSAL"
	RefTypeMaintenance = "MAINTENANCE_SCHEDULE"
)

// AccountingEntry is one immutable line in the financial ledger. Entries are
// append-only: no update or delete API exists anywhere in the system.
type AccountingEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	EntryType      string          `gorm:"type:varchar(30);not null;index" json:"entry_type"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	EntryDate      time.Time       `gorm:"not null" json:"entry_date"`
	Description    string          `gorm:"type:text" json:"description"`
	AssetID        *uuid.UUID      `gorm:"type:uuid;index" json:"asset_id"`
	ReferenceType  *string         `gorm:"type:varchar(30)" json:"reference_type"`
	ReferenceID    *uuid.UUID      `gorm:"type:uuid;index" json:"reference_id"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}
