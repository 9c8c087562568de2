package handler

import (
	"net/http"

	"assetflow/internal/middleware"
	"assetflow/internal/service"
	"assetflow/pkg/pagination"
	"assetflow/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountingHandler exposes the append-only entry ledger. Entries are written
// by the disposal and maintenance workflows, never through this API.
type AccountingHandler struct {
	accountingService service.AccountingService
}

func NewAccountingHandler(accountingService service.AccountingService) *AccountingHandler {
	return &AccountingHandler{accountingService: accountingService}
}

func (h *AccountingHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/api/accounting-entries")
	{
		entries.GET("", middleware.RequirePermission("accounting.read"), h.ListEntries)
		entries.GET("/:id", middleware.RequirePermission("accounting.read"), h.GetEntry)
	}
}

func (h *AccountingHandler) ListEntries(c *gin.Context) {
	p := pagination.Parse(c)
	entryType := c.Query("entry_type")

	entries, total, err := h.accountingService.List(c.Request.Context(), orgID(c), entryType, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, paged(entries, total, p.Page, p.Limit)))
}

func (h *AccountingHandler) GetEntry(c *gin.Context) {
	entry, err := h.accountingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entry))
}
