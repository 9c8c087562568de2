package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryCheckStatus enum constants
const (
	CheckInProgress = "IN_PROGRESS"
	CheckFinished   = "FINISHED"
)

// InventoryCheck represents one physical count over a set of assets. While
// IN_PROGRESS its details accept one recording each; FINISHED freezes them.
type InventoryCheck struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"organization_id"`
	CheckDate      time.Time         `gorm:"not null" json:"check_date"`
	CheckedBy      uuid.UUID         `gorm:"type:uuid;not null" json:"checked_by"`
	Status         string            `gorm:"type:varchar(20);not null;default:'IN_PROGRESS';index" json:"status"`
	Notes          string            `gorm:"type:text" json:"notes"`
	Details        []InventoryDetail `gorm:"foreignKey:CheckID" json:"details,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// InventoryDetail is the expected-vs-observed record for one asset within a
// check. IsFound and IsMatch are write-once: a nil IsFound marks a detail not
// yet physically verified.
type InventoryDetail struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CheckID          uuid.UUID `gorm:"type:uuid;not null;index:idx_details_check_asset,unique" json:"check_id"`
	AssetID          uuid.UUID `gorm:"type:uuid;not null;index:idx_details_check_asset,unique" json:"asset_id"`
	ExpectedLocation string    `gorm:"type:varchar(255)" json:"expected_location"`
	ExpectedStatus   string    `gorm:"type:varchar(20);not null" json:"expected_status"`
	ActualLocation   *string   `gorm:"type:varchar(255)" json:"actual_location"`
	ActualStatus     *string   `gorm:"type:varchar(20)" json:"actual_status"`
	IsFound          *bool     `json:"is_found"`
	IsMatch          bool      `gorm:"not null;default:false" json:"is_match"`
	Notes            string    `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Recorded reports whether the detail has been physically verified.
func (d *InventoryDetail) Recorded() bool {
	return d.IsFound != nil
}

// Discrepant reports whether the detail should surface in the discrepancy
// report: the asset was not found, its observed status did not match, or it
// was never verified at all.
func (d *InventoryDetail) Discrepant() bool {
	return d.IsFound == nil || !*d.IsFound || !d.IsMatch
}
