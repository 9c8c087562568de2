package handler

import (
	"net/http"

	"assetflow/internal/middleware"
	"assetflow/internal/service"
	"assetflow/pkg/pagination"
	"assetflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type InventoryCheckHandler struct {
	checkService service.InventoryCheckService
}

func NewInventoryCheckHandler(checkService service.InventoryCheckService) *InventoryCheckHandler {
	return &InventoryCheckHandler{checkService: checkService}
}

func (h *InventoryCheckHandler) RegisterRoutes(router *gin.RouterGroup) {
	checks := router.Group("/api/inventory-checks")
	{
		checks.GET("", middleware.RequireRole("admin", "manager", "staff"), h.ListChecks)
		checks.GET("/:id", middleware.RequireRole("admin", "manager", "staff"), h.GetCheck)
		checks.GET("/:id/discrepancies", middleware.RequireRole("admin", "manager"), h.GetDiscrepancies)
		checks.POST("", middleware.RequireRole("admin", "manager"), h.StartCheck)
		checks.POST("/:id/details", middleware.RequireRole("admin", "manager", "staff"), h.RecordDetail)
		checks.POST("/:id/finish", middleware.RequireRole("admin", "manager"), h.FinishCheck)
	}
}

func (h *InventoryCheckHandler) ListChecks(c *gin.Context) {
	p := pagination.Parse(c)
	status := c.Query("status")

	checks, total, err := h.checkService.List(c.Request.Context(), orgID(c), status, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, paged(checks, total, p.Page, p.Limit)))
}

func (h *InventoryCheckHandler) GetCheck(c *gin.Context) {
	check, err := h.checkService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, check))
}

// GetDiscrepancies lists the detail lines of a check whose physical count
// disagrees with the registry: unrecorded, missing, or mismatched assets.
func (h *InventoryCheckHandler) GetDiscrepancies(c *gin.Context) {
	details, err := h.checkService.FindDiscrepancies(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, details))
}

// StartCheck opens a reconciliation session seeded with a detail line per
// asset in scope.
func (h *InventoryCheckHandler) StartCheck(c *gin.Context) {
	var req service.StartCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	check, err := h.checkService.StartCheck(c.Request.Context(), orgID(c), userID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, check))
}

func (h *InventoryCheckHandler) RecordDetail(c *gin.Context) {
	var req service.RecordDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	detail, err := h.checkService.RecordDetail(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

func (h *InventoryCheckHandler) FinishCheck(c *gin.Context) {
	check, err := h.checkService.Finish(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, check))
}
