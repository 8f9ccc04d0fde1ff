package cartControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/roboarena/storefront-api/middleware"
	"github.com/roboarena/storefront-api/models"
	"github.com/roboarena/storefront-api/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	dsn := "file:" + filepath.Join(t.TempDir(), "cart.db") + "?_busy_timeout=10000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))

	s := store.New(db, decimal.Zero)
	r := gin.New()
	cart := r.Group("/cart")
	cart.Use(middleware.Session())
	{
		cart.GET("", GetCart(s))
		cart.POST("/add/:product_id", AddToCart(s))
		cart.POST("/remove/:product_id", RemoveFromCart(s))
		cart.POST("/remove_item/:product_id", RemoveCartItem(s))
	}
	return r, db
}

func seedProduct(t *testing.T, db *gorm.DB, slug, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        slug,
		Slug:        slug,
		SKU:         "SKU-" + slug,
		Price:       decimal.RequireFromString(price),
		StockStatus: models.StockStatusInStock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func doRequest(r *gin.Engine, method, target string, form string, ajax bool, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if ajax {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAddToCartAJAXReturnsCartCount(t *testing.T) {
	r, db := newTestRouter(t)
	product := seedProduct(t, db, "servo", "10.00")

	w := doRequest(r, http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), "quantity=2", true, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeJSON(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["cart_count"])
	assert.Equal(t, "servo", body["product_name"])
}

func TestAddToCartBrowserRedirectsToCart(t *testing.T) {
	r, db := newTestRouter(t)
	product := seedProduct(t, db, "servo", "10.00")

	w := doRequest(r, http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), "", false, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/cart", w.Header().Get("Location"))
}

func TestAddToCartUnknownProduct(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/cart/add/9999", "", true, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, false, body["success"])
}

func TestCartPersistsAcrossRequestsViaSessionCookie(t *testing.T) {
	r, db := newTestRouter(t)
	product := seedProduct(t, db, "servo", "10.00")

	first := doRequest(r, http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), "", true, nil)
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Same session sees the item, with live pricing
	w := doRequest(r, http.MethodGet, "/cart", "", true, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, float64(1), body["item_count"])
	assert.Equal(t, "10", body["grand_total"])

	// A fresh session sees an empty cart
	w = doRequest(r, http.MethodGet, "/cart", "", true, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeJSON(t, w)
	assert.Equal(t, float64(0), body["item_count"])
}

func TestRemoveDecrementsThenDeletes(t *testing.T) {
	r, db := newTestRouter(t)
	product := seedProduct(t, db, "servo", "10.00")
	target := fmt.Sprintf("/cart/add/%d", product.ID)

	first := doRequest(r, http.MethodPost, target, "quantity=2", true, nil)
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()

	removeTarget := fmt.Sprintf("/cart/remove/%d", product.ID)
	w := doRequest(r, http.MethodPost, removeTarget, "", true, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeJSON(t, w)["cart_count"])

	w = doRequest(r, http.MethodPost, removeTarget, "", true, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeJSON(t, w)["cart_count"])

	// Gone now: decrementing again fails just this action
	w = doRequest(r, http.MethodPost, removeTarget, "", true, cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveItemDeletesWholeLine(t *testing.T) {
	r, db := newTestRouter(t)
	product := seedProduct(t, db, "servo", "10.00")

	first := doRequest(r, http.MethodPost, fmt.Sprintf("/cart/add/%d", product.ID), "quantity=5", true, nil)
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()

	w := doRequest(r, http.MethodPost, fmt.Sprintf("/cart/remove_item/%d", product.ID), "", true, cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeJSON(t, w)["cart_count"])
}

func TestRemoveFromEmptySessionIsNotFound(t *testing.T) {
	r, db := newTestRouter(t)
	product := seedProduct(t, db, "servo", "10.00")

	w := doRequest(r, http.MethodPost, fmt.Sprintf("/cart/remove/%d", product.ID), "", true, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
