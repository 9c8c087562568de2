package handler

import (
	"net/http"

	"assetflow/internal/middleware"
	"assetflow/internal/service"
	"assetflow/pkg/pagination"
	"assetflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

func (h *MaintenanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	maintenance := router.Group("/api/maintenance")
	{
		maintenance.GET("", middleware.RequireRole("admin", "manager", "staff"), h.ListSchedules)
		maintenance.GET("/:id", middleware.RequireRole("admin", "manager", "staff"), h.GetSchedule)
		maintenance.POST("", middleware.RequireRole("admin", "manager"), h.ScheduleMaintenance)
		maintenance.POST("/:id/start", middleware.RequireRole("admin", "manager", "staff"), h.StartMaintenance)
		maintenance.POST("/:id/complete", middleware.RequireRole("admin", "manager", "staff"), h.CompleteMaintenance)
		maintenance.POST("/:id/cancel", middleware.RequireRole("admin", "manager"), h.CancelMaintenance)
	}
}

func (h *MaintenanceHandler) ListSchedules(c *gin.Context) {
	p := pagination.Parse(c)
	status := c.Query("status")

	schedules, total, err := h.maintenanceService.List(c.Request.Context(), orgID(c), status, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, paged(schedules, total, p.Page, p.Limit)))
}

func (h *MaintenanceHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.maintenanceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, schedule))
}

func (h *MaintenanceHandler) ScheduleMaintenance(c *gin.Context) {
	var req service.ScheduleMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	schedule, err := h.maintenanceService.Schedule(c.Request.Context(), orgID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, schedule))
}

// StartMaintenance moves the schedule to IN_PROGRESS and parks the asset in
// IN_MAINTENANCE.
func (h *MaintenanceHandler) StartMaintenance(c *gin.Context) {
	schedule, err := h.maintenanceService.Start(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, schedule))
}

// CompleteMaintenance returns the asset to ACTIVE and, when an actual cost is
// reported, posts it against the department's active budget plan.
func (h *MaintenanceHandler) CompleteMaintenance(c *gin.Context) {
	var req service.CompleteMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	schedule, err := h.maintenanceService.Complete(c.Request.Context(), c.Param("id"), userID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, schedule))
}

func (h *MaintenanceHandler) CancelMaintenance(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	schedule, err := h.maintenanceService.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, schedule))
}
