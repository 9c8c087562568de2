package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// The asset routes expose no status write. Lifecycle changes only happen
// through the transfer, disposal and maintenance workflow routes, so a direct
// status request must not resolve to any handler.
func TestAssetRoutes_NoDirectStatusWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	NewAssetHandler(nil).RegisterRoutes(router.Group(""))

	target := "/api/assets/" + uuid.NewString() + "/status"
	for _, method := range []string{http.MethodPatch, http.MethodPut, http.MethodPost} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(method, target, strings.NewReader(`{"status":"DISPOSED"}`))
		req.Header.Set("Content-Type", "application/json")

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s must not be routed", method, target)
	}
}
