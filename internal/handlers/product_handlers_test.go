package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/EdYashida/ecommerce-api/internal/models"
)

func TestAddProductAndGet(t *testing.T) {
	db := newTestDB(t)
	h := &ProductHandler{DB: db}
	e := echo.New()

	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/products/add", map[string]any{
		"name":  "Widget",
		"price": 9.99,
	})
	require.NoError(t, h.AddProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Product added successfully", resp["message"])

	recGet, cGet := doJSONRequest(t, e, http.MethodGet, "/api/products/1", nil)
	cGet.SetParamNames("id")
	cGet.SetParamValues("1")
	require.NoError(t, h.GetProduct(cGet))
	require.Equal(t, http.StatusOK, recGet.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(recGet.Body.Bytes(), &product))
	require.Equal(t, "Widget", product.Name)
	require.Equal(t, 9.99, product.Price)
	require.Equal(t, "", product.Description)
}

func TestAddProductMissingPrice(t *testing.T) {
	db := newTestDB(t)
	h := &ProductHandler{DB: db}
	e := echo.New()

	_, c := doJSONRequest(t, e, http.MethodPost, "/api/products/add", map[string]any{
		"name": "Widget",
	})
	err := h.AddProduct(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestGetProductNotFound(t *testing.T) {
	db := newTestDB(t)
	h := &ProductHandler{DB: db}
	e := echo.New()

	_, c := doJSONRequest(t, e, http.MethodGet, "/api/products/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	err := h.GetProduct(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteProductNotFound(t *testing.T) {
	db := newTestDB(t)
	h := &ProductHandler{DB: db}
	e := echo.New()

	require.NoError(t, db.Create(&models.Product{Name: "Widget", Price: 1}).Error)

	_, c := doJSONRequest(t, e, http.MethodDelete, "/api/products/delete/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	err := h.DeleteProduct(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestDeleteProductCascadesCartItems(t *testing.T) {
	db := newTestDB(t)
	h := &ProductHandler{DB: db}
	e := echo.New()

	require.NoError(t, db.Create(&models.Product{Name: "Widget", Price: 1}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: 1, ProductID: 1}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: 2, ProductID: 1}).Error)

	rec, c := doJSONRequest(t, e, http.MethodDelete, "/api/products/delete/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeleteProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var items int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("product_id = ?", 1).Count(&items).Error)
	require.EqualValues(t, 0, items, "cart rows must not dangle after product deletion")
}

func TestUpdateProductPartial(t *testing.T) {
	db := newTestDB(t)
	h := &ProductHandler{DB: db}
	e := echo.New()

	require.NoError(t, db.Create(&models.Product{Name: "Widget", Price: 9.99, Description: "a widget"}).Error)

	rec, c := doJSONRequest(t, e, http.MethodPut, "/api/products/delete/1", map[string]any{
		"price": 5,
	})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var product models.Product
	require.NoError(t, db.First(&product, 1).Error)
	require.Equal(t, "Widget", product.Name)
	require.Equal(t, "a widget", product.Description)
	require.EqualValues(t, 5, product.Price)
}

func TestUpdateProductNotFound(t *testing.T) {
	db := newTestDB(t)
	h := &ProductHandler{DB: db}
	e := echo.New()

	_, c := doJSONRequest(t, e, http.MethodPut, "/api/products/delete/42", map[string]any{"price": 5})
	c.SetParamNames("id")
	c.SetParamValues("42")
	err := h.UpdateProduct(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetProductsOmitsDescription(t *testing.T) {
	db := newTestDB(t)
	h := &ProductHandler{DB: db}
	e := echo.New()

	require.NoError(t, db.Create(&models.Product{Name: "Widget", Price: 9.99, Description: "long text"}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Gadget", Price: 3.5}).Error)

	rec, c := doJSONRequest(t, e, http.MethodGet, "/api/products", nil)
	require.NoError(t, h.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	for _, entry := range list {
		require.Contains(t, entry, "id")
		require.Contains(t, entry, "name")
		require.Contains(t, entry, "price")
		require.NotContains(t, entry, "description")
	}
}
