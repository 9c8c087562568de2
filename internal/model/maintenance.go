package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaintenanceStatus enum constants
const (
	MaintenanceScheduled  = "SCHEDULED"
	MaintenanceInProgress = "IN_PROGRESS"
	MaintenanceCompleted  = "COMPLETED"
	MaintenanceCancelled  = "CANCELLED"
)

// MaintenanceSchedule records upkeep work planned or performed on an asset.
// ActualCost is only set once the work is COMPLETED; cancellation requires a
// reason and is only valid from SCHEDULED or IN_PROGRESS.
type MaintenanceSchedule struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"organization_id"`
	AssetID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"asset_id"`
	MaintenanceType string           `gorm:"type:varchar(50);not null" json:"maintenance_type"`
	ScheduledDate   time.Time        `gorm:"not null" json:"scheduled_date"`
	Description     string           `gorm:"type:text" json:"description"`
	EstimatedCost   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0" json:"estimated_cost"`
	Status          string           `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	PerformedBy     *uuid.UUID       `gorm:"type:uuid" json:"performed_by"`
	StartedAt       *time.Time       `json:"started_at"`
	CompletedAt     *time.Time       `json:"completed_at"`
	ActualCost      *decimal.Decimal `gorm:"type:decimal(18,4)" json:"actual_cost"`
	Result          string           `gorm:"type:text" json:"result"`
	CancelReason    string           `gorm:"type:text" json:"cancel_reason"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// FiscalYear returns the budget year the work is posted against.
func (m *MaintenanceSchedule) FiscalYear() int {
	return m.ScheduledDate.Year()
}
