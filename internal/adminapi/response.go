package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/storeops/fulfillment/internal/fulfillment"
)

// apiError is the uniform error envelope of the admin API.
type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// pagedResult wraps list responses with pagination metadata.
type pagedResult struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get("db").(*gorm.DB)
}

// GetProcessor returns the request-scoped order processor.
func GetProcessor(c echo.Context) *fulfillment.OrderProcessor {
	return c.Get("processor").(*fulfillment.OrderProcessor)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, apiError{Code: code, Message: message, Detail: detail})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, pagedResult{Data: rows, Total: total, Page: page, PageSize: pageSize})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}
