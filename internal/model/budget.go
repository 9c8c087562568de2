package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetType enum constants
const (
	BudgetTypeMaintenance = "MAINTENANCE"
	BudgetTypeAcquisition = "ACQUISITION"
	BudgetTypeOperation   = "OPERATION"
)

// BudgetStatus enum constants
const (
	BudgetDraft  = "DRAFT"
	BudgetActive = "ACTIVE"
	BudgetClosed = "CLOSED"
)

// BudgetPlan is a department/fiscal-year/type scoped allocation that actual
// costs are posted against. Remaining and utilization are always derived
// from the stored amounts, never persisted.
type BudgetPlan struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	DepartmentID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_budget_scope,unique" json:"department_id"`
	FiscalYear      int             `gorm:"not null;index:idx_budget_scope,unique" json:"fiscal_year"`
	BudgetType      string          `gorm:"type:varchar(20);not null;index:idx_budget_scope,unique" json:"budget_type"`
	AllocatedAmount decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"allocated_amount"`
	SpentAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"spent_amount"`
	Status          string          `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Remaining returns allocated minus spent.
func (p *BudgetPlan) Remaining() decimal.Decimal {
	return p.AllocatedAmount.Sub(p.SpentAmount)
}

// Utilization returns spent divided by allocated, 0 when nothing is allocated.
func (p *BudgetPlan) Utilization() decimal.Decimal {
	if p.AllocatedAmount.IsZero() {
		return decimal.Zero
	}
	return p.SpentAmount.DivRound(p.AllocatedAmount, 6)
}
