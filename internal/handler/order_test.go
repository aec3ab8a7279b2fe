package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/machzaul/Tubes-Pemweb/config"
	"github.com/machzaul/Tubes-Pemweb/internal/models"
	"github.com/machzaul/Tubes-Pemweb/internal/service"
	"github.com/machzaul/Tubes-Pemweb/pkg/database"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.CustomerInfo{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
	))
	database.DB = db

	config.AppConfig = &config.Config{
		Server: config.ServerConfig{
			JWTSecret:          "test-secret",
			JWTExpirationHours: 1,
		},
		Site: config.SiteConfig{Name: "Test Shop"},
	}

	orderHandler := NewOrderHandler(service.NewOrderService(db))
	productHandler := &ProductHandler{}
	authHandler := &AuthHandler{}
	siteHandler := &SiteHandler{}

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/site", siteHandler.GetSiteInfo)
		api.GET("/products", productHandler.ListProducts)
		api.GET("/products/:id", productHandler.GetProduct)
		api.POST("/products", productHandler.CreateProduct)
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.GET("/track/:orderId", orderHandler.GetOrderByOrderID)
		api.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		api.DELETE("/orders/:id", orderHandler.DeleteOrder)
		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/create", authHandler.CreateAdmin)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, title string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Title: title, Price: price, Stock: stock}
	require.NoError(t, database.DB.Create(&p).Error)
	return p
}

func orderPayload(productID uint, qty int) gin.H {
	return gin.H{
		"customerInfo": gin.H{
			"fullName":    "Siti Rahma",
			"email":       "siti@example.com",
			"address":     "Jl. Sudirman 5, Jakarta",
			"phoneNumber": "+62-811-222-333",
		},
		"items": []gin.H{{"id": productID, "quantity": qty}},
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	r := setupRouter(t)
	p := seedProduct(t, "Smart Watch", 199.99, 5)

	w := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload(p.ID, 2))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		OrderID      string `json:"orderId"`
		Status       string `json:"status"`
		CustomerInfo struct {
			FullName string `json:"fullName"`
		} `json:"customerInfo"`
		Items []struct {
			Quantity int     `json:"quantity"`
			Price    float64 `json:"price"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, resp.OrderID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Siti Rahma", resp.CustomerInfo.FullName)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.InDelta(t, 199.99, resp.Items[0].Price, 0.0001)
}

func TestCreateOrderEndpointStockReport(t *testing.T) {
	r := setupRouter(t)
	p := seedProduct(t, "Smart Watch", 199.99, 1)

	w := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload(p.ID, 3))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Stock validation failed", resp.Error)
	require.Len(t, resp.Details, 1)
	assert.Contains(t, resp.Details[0], "Smart Watch")

	var product models.Product
	require.NoError(t, database.DB.First(&product, p.ID).Error)
	assert.Equal(t, 1, product.Stock)
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/orders/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/track/ORD-00000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	r := setupRouter(t)
	p := seedProduct(t, "Mug", 9.50, 4)

	w := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload(p.ID, 1))
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", created.ID), gin.H{
		"status":    "shipped",
		"note":      "courier picked up",
		"updatedBy": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Status        string `json:"status"`
		StatusHistory []struct {
			Status string `json:"status"`
			Note   string `json:"note"`
		} `json:"statusHistory"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "shipped", resp.Status)
	require.Len(t, resp.StatusHistory, 1)
	assert.Equal(t, "courier picked up", resp.StatusHistory[0].Note)

	// Missing status is rejected up front.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", created.ID), gin.H{"note": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOrderEndpoint(t *testing.T) {
	r := setupRouter(t)
	p := seedProduct(t, "Lamp", 25.00, 6)

	w := doJSON(t, r, http.MethodPost, "/api/orders", orderPayload(p.ID, 2))
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/orders/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	require.NoError(t, database.DB.First(&product, p.ID).Error)
	assert.Equal(t, 6, product.Stock)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/orders/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/products", gin.H{
		"title": "Smart Watch",
		"price": 199.99,
		"stock": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Smart Watch", list.Products[0].Title)

	w = doJSON(t, r, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSiteInfoEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/site", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp config.SiteConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Test Shop", resp.Name)
}
