package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nanosocial/backend/internal/middleware"
)

var validate = validator.New()

// getUserIDFromContext returns the authenticated caller's user id, or 0 when
// the request was not authenticated.
func getUserIDFromContext(c echo.Context) uint {
	if id, ok := c.Get(middleware.ContextUserIDKey).(uint); ok {
		return id
	}
	return 0
}

// detail renders the {"detail": "..."} envelope used for every status and
// error message.
func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"detail": msg})
}

// paginated renders a list response: a page of results plus the pagination
// meta block.
func paginated[T any](c echo.Context, items []T) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	totalItems := len(items)
	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))

	start := (page - 1) * limit
	if start > totalItems {
		start = totalItems
	}
	end := start + limit
	if end > totalItems {
		end = totalItems
	}

	return c.JSON(http.StatusOK, echo.Map{
		"results": items[start:end],
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      totalItems,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}
