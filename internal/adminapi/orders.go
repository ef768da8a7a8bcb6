package adminapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storeops/fulfillment/internal/domain"
	"github.com/storeops/fulfillment/internal/fulfillment"
	"github.com/storeops/fulfillment/internal/webserver"
)

type orderPayload struct {
	ProductIds []int64 `json:"product_ids"`
}

func registerOrderRoutes() {
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPOST("/orders", createOrder)
	webserver.ApiPOST("/orders/:id/process", processOrder)
}

func getOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var order domain.Order
	if err := GetDB(c).Preload("Products").First(&order, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	return ok(c, order)
}

func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	if len(payload.ProductIds) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "At least one product is required", nil)
	}

	var products []domain.Product
	if err := GetDB(c).Where("id IN ?", payload.ProductIds).Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load products", err.Error())
	}
	if len(products) != len(payload.ProductIds) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown product id in order", nil)
	}

	order := domain.Order{Products: products}
	if err := GetDB(c).Create(&order).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order", err.Error())
	}
	return ok(c, order)
}

// processOrder runs the fulfillment policy over every product of the
// order. Unknown orders answer 404; storage failures answer 500.
func processOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}

	orderID, err := GetProcessor(c).ProcessOrder(c.Request().Context(), id)
	if errors.Is(err, fulfillment.ErrOrderNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to process order", err.Error())
	}
	return ok(c, map[string]interface{}{"order_id": orderID})
}
