package adminapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storeops/fulfillment/config"
	"github.com/storeops/fulfillment/internal/adminapi"
	"github.com/storeops/fulfillment/internal/app"
	"github.com/storeops/fulfillment/internal/domain"
	"github.com/storeops/fulfillment/internal/webserver"
)

func setupAPI(t *testing.T) (*app.Application, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// a :memory: database lives in a single connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	application := app.NewApplication(config.DefaultAppConfig)
	application.OverrideDB(db)
	require.NoError(t, application.MigrateDB(false))
	application.Bootstrap()

	webserver.Init(application)
	adminapi.InitRouter()
	return application, db
}

func doRequest(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echoContentType, echoJSONType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	webserver.Instance().Echo().ServeHTTP(rec, req)
	return rec
}

const (
	echoContentType = "Content-Type"
	echoJSONType    = "application/json"
)

func seedOrder(t *testing.T, db *gorm.DB, products ...domain.Product) int64 {
	t.Helper()
	order := domain.Order{Products: products}
	require.NoError(t, db.Create(&order).Error)
	return order.ID
}

func TestProcessOrderNormalDecrementsStock(t *testing.T) {
	_, db := setupAPI(t)
	orderID := seedOrder(t, db, domain.Product{
		Name: "USB Cable", Type: domain.ProductTypeNormal, Available: 2, LeadTime: 15,
	})

	rec := doRequest(http.MethodPost, fmt.Sprintf("/api/orders/%d/process", orderID), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, orderID, resp["order_id"])

	var p domain.Product
	require.NoError(t, db.Where("name = ?", "USB Cable").First(&p).Error)
	assert.Equal(t, 1, p.Available)
	assert.Equal(t, 15, p.LeadTime)
}

func TestProcessOrderUnknownOrderAnswers404(t *testing.T) {
	_, db := setupAPI(t)

	rec := doRequest(http.MethodPost, "/api/orders/9999/process", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	require.NoError(t, db.Model(&domain.NotificationRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProcessOrderSeasonalDelayRecordsNotification(t *testing.T) {
	application, db := setupAPI(t)
	now := time.Now()
	orderID := seedOrder(t, db, domain.Product{
		Name: "Watermelon", Type: domain.ProductTypeSeasonal,
		Available: 0, LeadTime: 3,
		SeasonStartDate: timePtr(now.AddDate(0, 0, -2)),
		SeasonEndDate:   timePtr(now.AddDate(0, 0, 30)),
	})

	rec := doRequest(http.MethodPost, fmt.Sprintf("/api/orders/%d/process", orderID), "")

	require.Equal(t, http.StatusOK, rec.Code)
	application.Dispatcher().Wait()

	var p domain.Product
	require.NoError(t, db.Where("name = ?", "Watermelon").First(&p).Error)
	assert.Equal(t, 0, p.Available)
	assert.Equal(t, 3, p.LeadTime)

	var records []domain.NotificationRecord
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, domain.NotifyKindDelay, records[0].Kind)
	assert.Equal(t, "Watermelon", records[0].ProductName)
	assert.Equal(t, 3, records[0].LeadTime)
}

func TestProcessOrderExpiredProductPulledFromSale(t *testing.T) {
	application, db := setupAPI(t)
	now := time.Now()
	orderID := seedOrder(t, db, domain.Product{
		Name: "Milk", Type: domain.ProductTypeExpirable,
		Available:  3,
		ExpiryDate: timePtr(now.AddDate(0, 0, -2)),
	})

	rec := doRequest(http.MethodPost, fmt.Sprintf("/api/orders/%d/process", orderID), "")

	require.Equal(t, http.StatusOK, rec.Code)
	application.Dispatcher().Wait()

	var p domain.Product
	require.NoError(t, db.Where("name = ?", "Milk").First(&p).Error)
	assert.Equal(t, 0, p.Available)

	var records []domain.NotificationRecord
	require.NoError(t, db.Where("kind = ?", domain.NotifyKindExpiration).Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "Milk", records[0].ProductName)
}

func TestProcessOrderSeasonalBeforeSeasonOutOfStock(t *testing.T) {
	application, db := setupAPI(t)
	now := time.Now()
	orderID := seedOrder(t, db, domain.Product{
		Name: "Grapes", Type: domain.ProductTypeSeasonal,
		Available:       5,
		SeasonStartDate: timePtr(now.AddDate(0, 0, 30)),
		SeasonEndDate:   timePtr(now.AddDate(0, 0, 60)),
	})

	rec := doRequest(http.MethodPost, fmt.Sprintf("/api/orders/%d/process", orderID), "")

	require.Equal(t, http.StatusOK, rec.Code)
	application.Dispatcher().Wait()

	var p domain.Product
	require.NoError(t, db.Where("name = ?", "Grapes").First(&p).Error)
	assert.Equal(t, 0, p.Available)

	var records []domain.NotificationRecord
	require.NoError(t, db.Where("kind = ?", domain.NotifyKindOutOfStock).Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, "Grapes", records[0].ProductName)
}

func TestProcessSingleProductEndpoint(t *testing.T) {
	_, db := setupAPI(t)
	p := domain.Product{Name: "USB Dongle", Type: domain.ProductTypeNormal, Available: 1}
	require.NoError(t, db.Create(&p).Error)

	rec := doRequest(http.MethodPost, fmt.Sprintf("/api/products/%d/process", p.ID), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.Available)

	rec = doRequest(http.MethodPost, "/api/products/9999/process", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductValidation(t *testing.T) {
	setupAPI(t)

	rec := doRequest(http.MethodPost, "/api/products",
		`{"name":"Gadget","type":"DIGITAL"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(http.MethodPost, "/api/products",
		`{"name":"","type":"NORMAL"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(http.MethodPost, "/api/products",
		`{"name":"USB Cable","type":"NORMAL","available":2,"lead_time":15}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 2, p.Available)
	assert.NotZero(t, p.ID)
}

func TestUpdateProductTypeIsImmutable(t *testing.T) {
	_, db := setupAPI(t)
	p := domain.Product{Name: "Milk", Type: domain.ProductTypeExpirable, Available: 1}
	require.NoError(t, db.Create(&p).Error)

	rec := doRequest(http.MethodPut, fmt.Sprintf("/api/products/%d", p.ID),
		`{"name":"Milk","type":"NORMAL"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderRejectsUnknownProducts(t *testing.T) {
	setupAPI(t)

	rec := doRequest(http.MethodPost, "/api/orders", `{"product_ids":[12345]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAndProcessOrderRoundTrip(t *testing.T) {
	_, db := setupAPI(t)
	p := domain.Product{Name: "USB Cable", Type: domain.ProductTypeNormal, Available: 2}
	require.NoError(t, db.Create(&p).Error)

	rec := doRequest(http.MethodPost, "/api/orders", fmt.Sprintf(`{"product_ids":[%d]}`, p.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.NotZero(t, order.ID)

	rec = doRequest(http.MethodPost, fmt.Sprintf("/api/orders/%d/process", order.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 1, got.Available)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
