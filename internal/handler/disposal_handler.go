package handler

import (
	"net/http"

	"assetflow/internal/middleware"
	"assetflow/internal/service"
	"assetflow/pkg/pagination"
	"assetflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type DisposalHandler struct {
	disposalService service.DisposalService
}

func NewDisposalHandler(disposalService service.DisposalService) *DisposalHandler {
	return &DisposalHandler{disposalService: disposalService}
}

func (h *DisposalHandler) RegisterRoutes(router *gin.RouterGroup) {
	disposals := router.Group("/api/disposals")
	{
		disposals.GET("", middleware.RequireRole("admin", "manager", "staff"), h.ListDisposals)
		disposals.GET("/:id", middleware.RequireRole("admin", "manager", "staff"), h.GetDisposal)
		disposals.POST("", middleware.RequireRole("admin", "manager"), h.RequestDisposal)
		disposals.POST("/:id/approve", middleware.RequireRole("admin", "manager"), h.ApproveDisposal)
		disposals.POST("/:id/reject", middleware.RequireRole("admin", "manager"), h.RejectDisposal)
		disposals.POST("/:id/cancel", middleware.RequireRole("admin", "manager"), h.CancelDisposal)
	}
}

func (h *DisposalHandler) ListDisposals(c *gin.Context) {
	p := pagination.Parse(c)
	status := c.Query("status")

	disposals, total, err := h.disposalService.List(c.Request.Context(), orgID(c), status, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, paged(disposals, total, p.Page, p.Limit)))
}

func (h *DisposalHandler) GetDisposal(c *gin.Context) {
	disposal, err := h.disposalService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, disposal))
}

// RequestDisposal opens a disposal request for an asset; the asset itself is
// untouched until the request is approved.
func (h *DisposalHandler) RequestDisposal(c *gin.Context) {
	var req service.RequestDisposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	disposal, err := h.disposalService.Request(c.Request.Context(), orgID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, disposal))
}

// ApproveDisposal retires the asset and posts the gain/loss accounting entry
// in one transaction.
func (h *DisposalHandler) ApproveDisposal(c *gin.Context) {
	disposal, err := h.disposalService.Approve(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, disposal))
}

func (h *DisposalHandler) RejectDisposal(c *gin.Context) {
	var req service.RejectDisposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	disposal, err := h.disposalService.Reject(c.Request.Context(), c.Param("id"), userID(c), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, disposal))
}

func (h *DisposalHandler) CancelDisposal(c *gin.Context) {
	disposal, err := h.disposalService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, disposal))
}
