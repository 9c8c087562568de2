package model

import (
	"time"

	"github.com/google/uuid"
)

// AssetStatus enum constants
const (
	AssetStatusActive        = "ACTIVE"
	AssetStatusInMaintenance = "IN_MAINTENANCE"
	AssetStatusTransferred   = "TRANSFERRED"
	AssetStatusDisposed      = "DISPOSED"
)

// assetTransitions is the reachability table for asset status changes.
// DISPOSED has no outgoing edges: it is terminal.
var assetTransitions = map[string][]string{
	AssetStatusActive:        {AssetStatusInMaintenance, AssetStatusTransferred, AssetStatusDisposed},
	AssetStatusInMaintenance: {AssetStatusActive},
	AssetStatusTransferred:   {AssetStatusActive},
	AssetStatusDisposed:      {},
}

// CanTransitionAsset reports whether an asset may move from one status to
// another. Workflow services are the only callers; no other component writes
// asset status.
func CanTransitionAsset(from, to string) bool {
	for _, next := range assetTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Asset represents a tracked physical asset. Status only changes through the
// transfer, maintenance and disposal workflows; Code is immutable once
// assigned and unique within its organization.
type Asset struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index:idx_assets_org_code,unique" json:"organization_id"`
	Code           string     `gorm:"type:varchar(100);not null;index:idx_assets_org_code,unique" json:"code"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Category       string     `gorm:"type:varchar(100)" json:"category"`
	Location       string     `gorm:"type:varchar(255)" json:"location"`
	Status         string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index" json:"department_id"`
	UserID         *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Version        int64      `gorm:"not null;default:1" json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
