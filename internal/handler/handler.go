package handler

import (
	"errors"
	"net/http"

	"assetflow/pkg/apperr"
	"assetflow/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError maps workflow errors onto HTTP status codes and writes the
// standard error envelope.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrInvalidState),
		errors.Is(err, apperr.ErrDuplicateCode),
		errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrBudgetExceeded):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, response.Error(status, err.Error()))
}

// orgID returns the organization scope set by the auth middleware.
func orgID(c *gin.Context) string {
	return c.GetString("orgID")
}

// userID returns the authenticated user id set by the auth middleware.
func userID(c *gin.Context) string {
	return c.GetString("userID")
}

// paged wraps list results with pagination metadata in the data envelope.
func paged(items interface{}, total int64, page, limit int) gin.H {
	return gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	}
}
