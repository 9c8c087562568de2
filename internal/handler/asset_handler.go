package handler

import (
	"net/http"

	"assetflow/internal/middleware"
	"assetflow/internal/service"
	"assetflow/pkg/pagination"
	"assetflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	assetService service.AssetService
}

func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	assets := router.Group("/api/assets")
	{
		assets.GET("", middleware.RequireRole("admin", "manager", "staff"), h.ListAssets)
		assets.GET("/:id", middleware.RequireRole("admin", "manager", "staff"), h.GetAsset)
		assets.POST("", middleware.RequireRole("admin", "manager"), h.CreateAsset)
	}
	// Status is never written here. Moving an asset goes through the
	// transfer, disposal or maintenance workflow routes.
}

// @Summary      List assets
// @Tags         assets
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        status  query     string  false  "Filter by status: ACTIVE, IN_MAINTENANCE, TRANSFERRED, DISPOSED"
// @Success      200     {object}  response.Response
// @Router       /api/assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	p := pagination.Parse(c)
	status := c.Query("status")

	assets, total, err := h.assetService.ListAssets(c.Request.Context(), orgID(c), status, p.Page, p.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, paged(assets, total, p.Page, p.Limit)))
}

// @Summary      Get asset by ID
// @Tags         assets
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Asset ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetService.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// @Summary      Register a new asset
// @Tags         assets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateAssetRequest  true  "Asset payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req service.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), orgID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, asset))
}
