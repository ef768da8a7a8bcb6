package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storeops/fulfillment/internal/domain"
	"github.com/storeops/fulfillment/internal/webserver"
)

type productPayload struct {
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Available       *int       `json:"available"`
	LeadTime        *int       `json:"lead_time"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	SeasonStartDate *time.Time `json:"season_start_date"`
	SeasonEndDate   *time.Time `json:"season_end_date"`
}

// registerProductRoutes registers product catalog endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
	webserver.ApiPOST("/products/:id/process", processProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.TrimSpace(c.QueryParam("q"))
	typeFilter := strings.TrimSpace(c.QueryParam("type"))

	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	// whitelist allowed sort columns to avoid SQL injection
	allowed := map[string]string{
		"id":         "id",
		"name":       "name",
		"type":       "type",
		"available":  "available",
		"lead_time":  "lead_time",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
	sortCol, ok := allowed[sortField]
	if !ok || sortCol == "" {
		sortCol = "id"
	}

	db := GetDB(c).Model(&domain.Product{})
	if q != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}
	if typeFilter != "" {
		db = db.Where("type = ?", typeFilter)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func validateProductPayload(payload *productPayload) (string, bool) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return "Name is required", false
	}
	if !domain.ValidProductType(payload.Type) {
		return "Type must be one of NORMAL, SEASONAL, EXPIRABLE", false
	}
	if payload.Available != nil && *payload.Available < 0 {
		return "Available must be >= 0", false
	}
	if payload.LeadTime != nil && *payload.LeadTime < 0 {
		return "Lead time must be >= 0", false
	}
	if payload.SeasonStartDate != nil && payload.SeasonEndDate != nil &&
		payload.SeasonEndDate.Before(*payload.SeasonStartDate) {
		return "Season end must not precede season start", false
	}
	return "", true
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg, valid := validateProductPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}

	p := domain.Product{
		Name:            payload.Name,
		Type:            payload.Type,
		ExpiryDate:      payload.ExpiryDate,
		SeasonStartDate: payload.SeasonStartDate,
		SeasonEndDate:   payload.SeasonEndDate,
	}
	if payload.Available != nil {
		p.Available = *payload.Available
	}
	if payload.LeadTime != nil {
		p.LeadTime = *payload.LeadTime
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if msg, valid := validateProductPayload(&payload); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", msg, nil)
	}
	// product type is immutable once created
	if payload.Type != p.Type {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product type cannot be changed", nil)
	}

	p.Name = payload.Name
	if payload.Available != nil {
		p.Available = *payload.Available
	}
	if payload.LeadTime != nil {
		p.LeadTime = *payload.LeadTime
	}
	p.ExpiryDate = payload.ExpiryDate
	p.SeasonStartDate = payload.SeasonStartDate
	p.SeasonEndDate = payload.SeasonEndDate
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

// processProduct re-applies the fulfillment policy to a single product,
// bypassing order lookup.
func processProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err := GetProcessor(c).ProcessProduct(c.Request().Context(), &p); err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to process product", err.Error())
	}
	return ok(c, p)
}
