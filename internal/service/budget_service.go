package service

import (
	"context"
	"fmt"

	"assetflow/internal/model"
	"assetflow/internal/repository"
	"assetflow/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs

type CreateBudgetPlanRequest struct {
	DepartmentID    string `json:"department_id" binding:"required"`
	FiscalYear      int    `json:"fiscal_year" binding:"required,gte=2000"`
	BudgetType      string `json:"budget_type" binding:"required,oneof=MAINTENANCE ACQUISITION OPERATION"`
	AllocatedAmount string `json:"allocated_amount" binding:"required"`
}

type BudgetPlanResponse struct {
	ID              string `json:"id"`
	DepartmentID    string `json:"department_id"`
	FiscalYear      int    `json:"fiscal_year"`
	BudgetType      string `json:"budget_type"`
	AllocatedAmount string `json:"allocated_amount"`
	SpentAmount     string `json:"spent_amount"`
	RemainingBudget string `json:"remaining_budget"`
	UtilizationRate string `json:"utilization_rate"`
	Status          string `json:"status"`
}

// BudgetService is the ledger tracking allocated vs. spent amount per
// department/fiscal-year/type. Postings that would push an active plan past
// its allocation are rejected, never silently recorded.
type BudgetService interface {
	CreatePlan(ctx context.Context, orgID string, req CreateBudgetPlanRequest) (BudgetPlanResponse, error)
	Activate(ctx context.Context, id string) (BudgetPlanResponse, error)
	Close(ctx context.Context, id string) (BudgetPlanResponse, error)
	Get(ctx context.Context, id string) (BudgetPlanResponse, error)
	List(ctx context.Context, orgID string, fiscalYear, page, limit int) ([]BudgetPlanResponse, int64, error)

	// PostExpense increases the plan's spent amount. Called by the
	// maintenance workflow inside its own transaction context.
	PostExpense(ctx context.Context, planID uuid.UUID, amount decimal.Decimal) (*model.BudgetPlan, error)
	// FindActivePlan resolves the plan a cost should post against, nil when
	// no active plan covers the scope.
	FindActivePlan(ctx context.Context, orgID, departmentID uuid.UUID, fiscalYear int, budgetType string) (*model.BudgetPlan, error)
}

type budgetService struct {
	budgets   repository.BudgetRepository
	txManager repository.TransactionManager
}

func NewBudgetService(budgets repository.BudgetRepository, txManager repository.TransactionManager) BudgetService {
	return &budgetService{budgets: budgets, txManager: txManager}
}

func (s *budgetService) CreatePlan(ctx context.Context, orgID string, req CreateBudgetPlanRequest) (BudgetPlanResponse, error) {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return BudgetPlanResponse{}, apperr.Validation("invalid organization id %q", orgID)
	}
	dept, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return BudgetPlanResponse{}, apperr.Validation("invalid department id %q", req.DepartmentID)
	}
	allocated, err := decimal.NewFromString(req.AllocatedAmount)
	if err != nil {
		return BudgetPlanResponse{}, apperr.Validation("invalid allocated amount %q", req.AllocatedAmount)
	}
	if allocated.IsNegative() {
		return BudgetPlanResponse{}, apperr.Validation("allocated amount must not be negative")
	}

	plan := &model.BudgetPlan{
		ID:              uuid.New(),
		OrganizationID:  org,
		DepartmentID:    dept,
		FiscalYear:      req.FiscalYear,
		BudgetType:      req.BudgetType,
		AllocatedAmount: allocated,
		SpentAmount:     decimal.Zero,
		Status:          model.BudgetDraft,
	}

	if err := s.budgets.Create(ctx, plan); err != nil {
		return BudgetPlanResponse{}, fmt.Errorf("failed to create budget plan: %w", err)
	}

	return toBudgetResponse(plan), nil
}

func (s *budgetService) Activate(ctx context.Context, id string) (BudgetPlanResponse, error) {
	return s.changePlanStatus(ctx, id, model.BudgetDraft, model.BudgetActive, "activate")
}

func (s *budgetService) Close(ctx context.Context, id string) (BudgetPlanResponse, error) {
	return s.changePlanStatus(ctx, id, model.BudgetActive, model.BudgetClosed, "close")
}

func (s *budgetService) changePlanStatus(ctx context.Context, id, from, to, verb string) (BudgetPlanResponse, error) {
	planID, err := uuid.Parse(id)
	if err != nil {
		return BudgetPlanResponse{}, apperr.Validation("invalid budget plan id %q", id)
	}

	var plan *model.BudgetPlan
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		plan, txErr = s.budgets.FindByIDForUpdate(txCtx, planID)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("budget plan", id)
			}
			return fmt.Errorf("failed to load budget plan: %w", txErr)
		}

		if plan.Status != from {
			return apperr.InvalidState("budget plan", plan.Status, verb)
		}

		plan.Status = to
		if txErr = s.budgets.Update(txCtx, plan); txErr != nil {
			return fmt.Errorf("failed to update budget plan: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return BudgetPlanResponse{}, err
	}

	return toBudgetResponse(plan), nil
}

func (s *budgetService) Get(ctx context.Context, id string) (BudgetPlanResponse, error) {
	planID, err := uuid.Parse(id)
	if err != nil {
		return BudgetPlanResponse{}, apperr.Validation("invalid budget plan id %q", id)
	}
	plan, err := s.budgets.FindByID(ctx, planID)
	if err != nil {
		if repository.IsNotFound(err) {
			return BudgetPlanResponse{}, apperr.NotFound("budget plan", id)
		}
		return BudgetPlanResponse{}, fmt.Errorf("failed to load budget plan: %w", err)
	}
	return toBudgetResponse(plan), nil
}

func (s *budgetService) List(ctx context.Context, orgID string, fiscalYear, page, limit int) ([]BudgetPlanResponse, int64, error) {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return nil, 0, apperr.Validation("invalid organization id %q", orgID)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	plans, total, err := s.budgets.List(ctx, org, fiscalYear, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list budget plans: %w", err)
	}

	res := make([]BudgetPlanResponse, 0, len(plans))
	for i := range plans {
		res = append(res, toBudgetResponse(&plans[i]))
	}
	return res, total, nil
}

// PostExpense adds amount to the plan's spent total. The plan must be ACTIVE,
// and the posting is rejected when it would exceed the allocation: overspend
// is never recorded as a negative remainder.
func (s *budgetService) PostExpense(ctx context.Context, planID uuid.UUID, amount decimal.Decimal) (*model.BudgetPlan, error) {
	if amount.IsNegative() {
		return nil, apperr.Validation("expense amount must not be negative")
	}

	plan, err := s.budgets.FindByIDForUpdate(ctx, planID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("budget plan", planID)
		}
		return nil, fmt.Errorf("failed to load budget plan: %w", err)
	}

	if plan.Status != model.BudgetActive {
		return nil, apperr.InvalidState("budget plan", plan.Status, "post expense")
	}

	newSpent := plan.SpentAmount.Add(amount)
	if newSpent.GreaterThan(plan.AllocatedAmount) {
		return nil, apperr.BudgetExceeded(
			"posting %s would exceed allocation %s (spent %s)",
			amount, plan.AllocatedAmount, plan.SpentAmount)
	}

	plan.SpentAmount = newSpent
	if err := s.budgets.Update(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to update budget plan: %w", err)
	}
	return plan, nil
}

func (s *budgetService) FindActivePlan(ctx context.Context, orgID, departmentID uuid.UUID, fiscalYear int, budgetType string) (*model.BudgetPlan, error) {
	plan, err := s.budgets.FindActivePlan(ctx, orgID, departmentID, fiscalYear, budgetType)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up budget plan: %w", err)
	}
	return plan, nil
}

func toBudgetResponse(p *model.BudgetPlan) BudgetPlanResponse {
	return BudgetPlanResponse{
		ID:              p.ID.String(),
		DepartmentID:    p.DepartmentID.String(),
		FiscalYear:      p.FiscalYear,
		BudgetType:      p.BudgetType,
		AllocatedAmount: p.AllocatedAmount.String(),
		SpentAmount:     p.SpentAmount.String(),
		RemainingBudget: p.Remaining().String(),
		UtilizationRate: p.Utilization().String(),
		Status:          p.Status,
	}
}
