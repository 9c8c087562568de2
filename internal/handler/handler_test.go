package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetflow/pkg/apperr"
	"assetflow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperr.NotFound("asset", "abc"), http.StatusNotFound},
		{"validation", apperr.Validation("bad input"), http.StatusBadRequest},
		{"invalid state", apperr.InvalidState("transfer", "APPROVED", "cancel"), http.StatusConflict},
		{"duplicate code", apperr.DuplicateCode("AST-001"), http.StatusConflict},
		{"write conflict", apperr.Conflict("asset", "abc"), http.StatusConflict},
		{"budget exceeded", apperr.BudgetExceeded("over by %s", "10"), http.StatusUnprocessableEntity},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			writeError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body response.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.status, body.StatusCode)
			assert.NotEmpty(t, body.Error)
		})
	}
}
