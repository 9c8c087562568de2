package handler

import (
	"net/http"

	"assetflow/internal/middleware"
	"assetflow/internal/service"
	"assetflow/pkg/pagination"
	"assetflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type TransferHandler struct {
	transferService service.TransferService
}

func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// cancelRequest carries the mandatory reason for cancelling a workflow.
type cancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *TransferHandler) RegisterRoutes(router *gin.RouterGroup) {
	transfers := router.Group("/api/transfers")
	{
		transfers.GET("", middleware.RequireRole("admin", "manager", "staff"), h.ListTransfers)
		transfers.GET("/:id", middleware.RequireRole("admin", "manager", "staff"), h.GetTransfer)
		transfers.POST("", middleware.RequireRole("admin", "manager", "staff"), h.RequestTransfer)
		transfers.POST("/:id/approve", middleware.RequireRole("admin", "manager"), h.ApproveTransfer)
		transfers.POST("/:id/cancel", middleware.RequireRole("admin", "manager", "staff"), h.CancelTransfer)
	}
}

// @Summary      List transfer requests
// @Tags         transfers
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        status  query     string  false  "Filter by status: PENDING, APPROVED, CANCELLED"
// @Success      200     {object}  response.Response
// @Router       /api/transfers [get]
func (h *TransferHandler) ListTransfers(c *gin.Context) {
	p := pagination.Parse(c)
	status := c.Query("status")

	transfers, total, err := h.transferService.List(c.Request.Context(), orgID(c), status, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, paged(transfers, total, p.Page, p.Limit)))
}

// @Summary      Get transfer by ID
// @Tags         transfers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transfer ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetTransfer(c *gin.Context) {
	transfer, err := h.transferService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, transfer))
}

// @Summary      Request an asset transfer
// @Tags         transfers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.RequestTransferRequest  true  "Transfer payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/transfers [post]
func (h *TransferHandler) RequestTransfer(c *gin.Context) {
	var req service.RequestTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	transfer, err := h.transferService.Request(c.Request.Context(), orgID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, transfer))
}

// @Summary      Approve a pending transfer
// @Tags         transfers
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Transfer ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/transfers/{id}/approve [post]
func (h *TransferHandler) ApproveTransfer(c *gin.Context) {
	transfer, err := h.transferService.Approve(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, transfer))
}

// @Summary      Cancel a pending transfer
// @Tags         transfers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string         true  "Transfer ID"
// @Param        payload  body  cancelRequest  true  "Cancellation reason"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) CancelTransfer(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	transfer, err := h.transferService.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, transfer))
}
