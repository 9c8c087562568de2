package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Bounds applied to the page/limit query parameters. Anything outside them
// falls back to the default rather than erroring.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params carries the sanitized page window of a list request.
type Params struct {
	Page  int
	Limit int
}

// Parse reads page and limit from the request query string, clamping both
// into range. Malformed values silently become the defaults.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

// Offset converts the window into a row offset for SQL paging.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}
