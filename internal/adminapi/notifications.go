package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storeops/fulfillment/internal/domain"
	"github.com/storeops/fulfillment/internal/webserver"
)

func registerNotificationRoutes() {
	webserver.ApiGET("/notifications", listNotifications)
}

// listNotifications pages through the notification audit trail.
func listNotifications(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.NotificationRecord{})
	if kind := strings.TrimSpace(c.QueryParam("kind")); kind != "" {
		db = db.Where("kind = ?", kind)
	}
	if product := strings.TrimSpace(c.QueryParam("product")); product != "" {
		db = db.Where("product_name = ?", product)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query notifications", err.Error())
	}

	var rows []domain.NotificationRecord
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query notifications", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}
