package handler

import (
	"net/http"
	"strconv"

	"assetflow/internal/middleware"
	"assetflow/internal/service"
	"assetflow/pkg/pagination"
	"assetflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	budgetService service.BudgetService
}

func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

func (h *BudgetHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Budget routes check permission codes, resolved per role through
	// role_permissions.
	budgets := router.Group("/api/budgets")
	{
		budgets.GET("", middleware.RequirePermission("budgets.read"), h.ListPlans)
		budgets.GET("/:id", middleware.RequirePermission("budgets.read"), h.GetPlan)
		budgets.POST("", middleware.RequirePermission("budgets.write"), h.CreatePlan)
		budgets.POST("/:id/activate", middleware.RequirePermission("budgets.approve"), h.ActivatePlan)
		budgets.POST("/:id/close", middleware.RequirePermission("budgets.approve"), h.ClosePlan)
	}
}

// @Summary      List budget plans
// @Tags         budgets
// @Security     BearerAuth
// @Produce      json
// @Param        page         query     int  false  "Page number (default: 1)"
// @Param        limit        query     int  false  "Items per page (default: 20)"
// @Param        fiscal_year  query     int  false  "Filter by fiscal year"
// @Success      200          {object}  response.Response
// @Router       /api/budgets [get]
func (h *BudgetHandler) ListPlans(c *gin.Context) {
	p := pagination.Parse(c)
	fiscalYear, _ := strconv.Atoi(c.Query("fiscal_year"))

	plans, total, err := h.budgetService.List(c.Request.Context(), orgID(c), fiscalYear, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, paged(plans, total, p.Page, p.Limit)))
}

// @Summary      Get budget plan by ID
// @Tags         budgets
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Budget plan ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/budgets/{id} [get]
func (h *BudgetHandler) GetPlan(c *gin.Context) {
	plan, err := h.budgetService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, plan))
}

// @Summary      Create a budget plan (DRAFT)
// @Tags         budgets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateBudgetPlanRequest  true  "Plan payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/budgets [post]
func (h *BudgetHandler) CreatePlan(c *gin.Context) {
	var req service.CreateBudgetPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	plan, err := h.budgetService.CreatePlan(c.Request.Context(), orgID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, plan))
}

// @Summary      Activate a draft plan
// @Tags         budgets
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Budget plan ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/budgets/{id}/activate [post]
func (h *BudgetHandler) ActivatePlan(c *gin.Context) {
	plan, err := h.budgetService.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, plan))
}

// @Summary      Close an active plan
// @Tags         budgets
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Budget plan ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/budgets/{id}/close [post]
func (h *BudgetHandler) ClosePlan(c *gin.Context) {
	plan, err := h.budgetService.Close(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, plan))
}
