package service

import (
	"context"
	"fmt"
	"time"

	"assetflow/internal/model"
	"assetflow/internal/repository"
	ws "assetflow/internal/websocket"
	"assetflow/pkg/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs

type ScheduleMaintenanceRequest struct {
	AssetID         string `json:"asset_id" binding:"required"`
	MaintenanceType string `json:"maintenance_type" binding:"required"`
	ScheduledDate   string `json:"scheduled_date" binding:"required"` // RFC3339
	Description     string `json:"description"`
	EstimatedCost   string `json:"estimated_cost"`
}

type CompleteMaintenanceRequest struct {
	Result     string `json:"result" binding:"required"`
	ActualCost string `json:"actual_cost"`
}

type MaintenanceResponse struct {
	ID              string  `json:"id"`
	AssetID         string  `json:"asset_id"`
	MaintenanceType string  `json:"maintenance_type"`
	ScheduledDate   string  `json:"scheduled_date"`
	Description     string  `json:"description"`
	EstimatedCost   string  `json:"estimated_cost"`
	Status          string  `json:"status"`
	PerformedBy     *string `json:"performed_by"`
	ActualCost      *string `json:"actual_cost"`
	Result          string  `json:"result,omitempty"`
	CancelReason    string  `json:"cancel_reason,omitempty"`
}

// MaintenanceService is the workflow scheduling and performing upkeep work.
// Completion posts the actual cost against the department's maintenance
// budget and records the matching accounting entry, in one transaction with
// the status change.
type MaintenanceService interface {
	Schedule(ctx context.Context, orgID string, req ScheduleMaintenanceRequest) (MaintenanceResponse, error)
	Start(ctx context.Context, id, performerID string) (MaintenanceResponse, error)
	Complete(ctx context.Context, id, userID string, req CompleteMaintenanceRequest) (MaintenanceResponse, error)
	Cancel(ctx context.Context, id, reason string) (MaintenanceResponse, error)
	Get(ctx context.Context, id string) (MaintenanceResponse, error)
	List(ctx context.Context, orgID, status string, page, limit int) ([]MaintenanceResponse, int64, error)
}

type maintenanceService struct {
	schedules repository.MaintenanceRepository
	assets    repository.AssetRepository
	registry  AssetService
	ledger    BudgetService
	recorder  AccountingService
	txManager repository.TransactionManager
	hub       *ws.Hub
}

func NewMaintenanceService(
	schedules repository.MaintenanceRepository,
	assets repository.AssetRepository,
	registry AssetService,
	ledger BudgetService,
	recorder AccountingService,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) MaintenanceService {
	return &maintenanceService{
		schedules: schedules,
		assets:    assets,
		registry:  registry,
		ledger:    ledger,
		recorder:  recorder,
		txManager: txManager,
		hub:       hub,
	}
}

func (s *maintenanceService) Schedule(ctx context.Context, orgID string, req ScheduleMaintenanceRequest) (MaintenanceResponse, error) {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return MaintenanceResponse{}, apperr.Validation("invalid organization id %q", orgID)
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return MaintenanceResponse{}, apperr.Validation("invalid asset id %q", req.AssetID)
	}

	if _, err := s.assets.FindByID(ctx, assetID); err != nil {
		if repository.IsNotFound(err) {
			return MaintenanceResponse{}, apperr.NotFound("asset", req.AssetID)
		}
		return MaintenanceResponse{}, fmt.Errorf("failed to load asset: %w", err)
	}

	scheduledDate, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		return MaintenanceResponse{}, apperr.Validation("invalid scheduled date %q", req.ScheduledDate)
	}

	estimated := decimal.Zero
	if req.EstimatedCost != "" {
		parsed, parseErr := decimal.NewFromString(req.EstimatedCost)
		if parseErr != nil {
			return MaintenanceResponse{}, apperr.Validation("invalid estimated cost %q", req.EstimatedCost)
		}
		if parsed.IsNegative() {
			return MaintenanceResponse{}, apperr.Validation("estimated cost must not be negative")
		}
		estimated = parsed
	}

	schedule := &model.MaintenanceSchedule{
		ID:              uuid.New(),
		OrganizationID:  org,
		AssetID:         assetID,
		MaintenanceType: req.MaintenanceType,
		ScheduledDate:   scheduledDate,
		Description:     req.Description,
		EstimatedCost:   estimated,
		Status:          model.MaintenanceScheduled,
	}

	if err := s.schedules.Create(ctx, schedule); err != nil {
		return MaintenanceResponse{}, fmt.Errorf("failed to create maintenance schedule: %w", err)
	}

	return toMaintenanceResponse(schedule), nil
}

// Start moves the work to IN_PROGRESS and takes the asset out of service.
func (s *maintenanceService) Start(ctx context.Context, id, performerID string) (MaintenanceResponse, error) {
	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return MaintenanceResponse{}, apperr.Validation("invalid maintenance id %q", id)
	}
	performer, err := uuid.Parse(performerID)
	if err != nil {
		return MaintenanceResponse{}, apperr.Validation("invalid performer id %q", performerID)
	}

	var schedule *model.MaintenanceSchedule
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		schedule, txErr = s.schedules.FindByIDForUpdate(txCtx, scheduleID)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("maintenance schedule", id)
			}
			return fmt.Errorf("failed to load maintenance schedule: %w", txErr)
		}

		if schedule.Status != model.MaintenanceScheduled {
			return apperr.InvalidState("maintenance schedule", schedule.Status, "start")
		}

		if _, txErr = s.registry.ChangeStatus(txCtx, schedule.AssetID, model.AssetStatusInMaintenance); txErr != nil {
			return txErr
		}

		now := time.Now()
		schedule.Status = model.MaintenanceInProgress
		schedule.PerformedBy = &performer
		schedule.StartedAt = &now

		if txErr = s.schedules.Update(txCtx, schedule); txErr != nil {
			return fmt.Errorf("failed to update maintenance schedule: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return MaintenanceResponse{}, err
	}

	return toMaintenanceResponse(schedule), nil
}

// Complete finishes the work, returns the asset to service, and posts the
// actual cost. When a matching active budget plan exists the posting and the
// MAINTENANCE_EXPENSE entry commit atomically with the completion; a
// BudgetExceeded rejection rolls the whole completion back.
func (s *maintenanceService) Complete(ctx context.Context, id, userID string, req CompleteMaintenanceRequest) (MaintenanceResponse, error) {
	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return MaintenanceResponse{}, apperr.Validation("invalid maintenance id %q", id)
	}
	user, err := uuid.Parse(userID)
	if err != nil {
		return MaintenanceResponse{}, apperr.Validation("invalid user id %q", userID)
	}

	var actualCost *decimal.Decimal
	if req.ActualCost != "" {
		parsed, parseErr := decimal.NewFromString(req.ActualCost)
		if parseErr != nil {
			return MaintenanceResponse{}, apperr.Validation("invalid actual cost %q", req.ActualCost)
		}
		if parsed.IsNegative() {
			return MaintenanceResponse{}, apperr.Validation("actual cost must not be negative")
		}
		actualCost = &parsed
	}

	var schedule *model.MaintenanceSchedule
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		schedule, txErr = s.schedules.FindByIDForUpdate(txCtx, scheduleID)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("maintenance schedule", id)
			}
			return fmt.Errorf("failed to load maintenance schedule: %w", txErr)
		}

		if schedule.Status != model.MaintenanceInProgress {
			return apperr.InvalidState("maintenance schedule", schedule.Status, "complete")
		}

		asset, txErr := s.registry.ChangeStatus(txCtx, schedule.AssetID, model.AssetStatusActive)
		if txErr != nil {
			return txErr
		}

		now := time.Now()
		schedule.Status = model.MaintenanceCompleted
		schedule.CompletedAt = &now
		schedule.Result = req.Result
		schedule.ActualCost = actualCost

		if actualCost != nil && asset.DepartmentID != nil {
			plan, planErr := s.ledger.FindActivePlan(txCtx,
				schedule.OrganizationID, *asset.DepartmentID,
				schedule.FiscalYear(), model.BudgetTypeMaintenance)
			if planErr != nil {
				return planErr
			}
			if plan != nil {
				if _, postErr := s.ledger.PostExpense(txCtx, plan.ID, *actualCost); postErr != nil {
					return postErr
				}
				if _, recErr := s.recorder.Record(txCtx, RecordEntryCommand{
					OrganizationID: schedule.OrganizationID,
					EntryType:      model.EntryTypeMaintenanceExpense,
					Amount:         *actualCost,
					EntryDate:      now,
					Description:    fmt.Sprintf("maintenance (%s)", schedule.MaintenanceType),
					AssetID:        &schedule.AssetID,
					ReferenceType:  model.RefTypeMaintenance,
					ReferenceID:    &schedule.ID,
					CreatedBy:      user,
				}); recErr != nil {
					return recErr
				}
			}
		}

		if txErr = s.schedules.Update(txCtx, schedule); txErr != nil {
			return fmt.Errorf("failed to update maintenance schedule: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return MaintenanceResponse{}, err
	}

	notify(s.hub, EventMaintenanceCompleted, map[string]interface{}{
		"maintenance_id": schedule.ID.String(),
		"asset_id":       schedule.AssetID.String(),
	})

	return toMaintenanceResponse(schedule), nil
}

func (s *maintenanceService) Cancel(ctx context.Context, id, reason string) (MaintenanceResponse, error) {
	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return MaintenanceResponse{}, apperr.Validation("invalid maintenance id %q", id)
	}
	if reason == "" {
		return MaintenanceResponse{}, apperr.Validation("cancellation reason is required")
	}

	var schedule *model.MaintenanceSchedule
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var txErr error
		schedule, txErr = s.schedules.FindByIDForUpdate(txCtx, scheduleID)
		if txErr != nil {
			if repository.IsNotFound(txErr) {
				return apperr.NotFound("maintenance schedule", id)
			}
			return fmt.Errorf("failed to load maintenance schedule: %w", txErr)
		}

		if schedule.Status != model.MaintenanceScheduled && schedule.Status != model.MaintenanceInProgress {
			return apperr.InvalidState("maintenance schedule", schedule.Status, "cancel")
		}

		// Work already underway returns the asset to service.
		if schedule.Status == model.MaintenanceInProgress {
			if _, txErr = s.registry.ChangeStatus(txCtx, schedule.AssetID, model.AssetStatusActive); txErr != nil {
				return txErr
			}
		}

		schedule.Status = model.MaintenanceCancelled
		schedule.CancelReason = reason

		if txErr = s.schedules.Update(txCtx, schedule); txErr != nil {
			return fmt.Errorf("failed to update maintenance schedule: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return MaintenanceResponse{}, err
	}

	return toMaintenanceResponse(schedule), nil
}

func (s *maintenanceService) Get(ctx context.Context, id string) (MaintenanceResponse, error) {
	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return MaintenanceResponse{}, apperr.Validation("invalid maintenance id %q", id)
	}
	schedule, err := s.schedules.FindByID(ctx, scheduleID)
	if err != nil {
		if repository.IsNotFound(err) {
			return MaintenanceResponse{}, apperr.NotFound("maintenance schedule", id)
		}
		return MaintenanceResponse{}, fmt.Errorf("failed to load maintenance schedule: %w", err)
	}
	return toMaintenanceResponse(schedule), nil
}

func (s *maintenanceService) List(ctx context.Context, orgID, status string, page, limit int) ([]MaintenanceResponse, int64, error) {
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

	schedules, total, err := s.schedules.List(ctx, org, status, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list maintenance schedules: %w", err)
	}

	res := make([]MaintenanceResponse, 0, len(schedules))
	for i := range schedules {
		res = append(res, toMaintenanceResponse(&schedules[i]))
	}
	return res, total, nil
}

func toMaintenanceResponse(m *model.MaintenanceSchedule) MaintenanceResponse {
	resp := MaintenanceResponse{
		ID:              m.ID.String(),
		AssetID:         m.AssetID.String(),
		MaintenanceType: m.MaintenanceType,
		ScheduledDate:   m.ScheduledDate.Format(time.RFC3339),
		Description:     m.Description,
		EstimatedCost:   m.EstimatedCost.String(),
		Status:          m.Status,
		Result:          m.Result,
		CancelReason:    m.CancelReason,
	}
	resp.PerformedBy = uuidPtrString(m.PerformedBy)
	if m.ActualCost != nil {
		s := m.ActualCost.String()
		resp.ActualCost = &s
	}
	return resp
}
