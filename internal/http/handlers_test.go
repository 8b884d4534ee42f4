package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flamesco/shopfront/internal/domain"
	"github.com/flamesco/shopfront/internal/repository"
	"github.com/flamesco/shopfront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type catalogMock struct {
	products   []domain.Product
	product    *domain.Product
	categories []domain.Category
	err        error
}

func (c catalogMock) ListProducts(context.Context, string, string) ([]domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.products, nil
}

func (c catalogMock) GetProduct(context.Context, string) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.product, nil
}

func (c catalogMock) ListCategories(context.Context) ([]domain.Category, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.categories, nil
}

type cartMock struct {
	cart *domain.Cart
	err  error

	gotProductID string
	gotSize      domain.Size
	gotQuantity  int
}

func (c *cartMock) GetCart(_ context.Context, cartID string) (*domain.Cart, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

func (c *cartMock) AddItem(_ context.Context, _, productID string, size domain.Size, quantity int) (*domain.Cart, error) {
	c.gotProductID, c.gotSize, c.gotQuantity = productID, size, quantity
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

func (c *cartMock) UpdateItem(_ context.Context, _, productID string, size domain.Size, quantity int) (*domain.Cart, error) {
	c.gotProductID, c.gotSize, c.gotQuantity = productID, size, quantity
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

func (c *cartMock) RemoveItem(_ context.Context, _, productID string, size domain.Size) (*domain.Cart, error) {
	c.gotProductID, c.gotSize = productID, size
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

type checkoutMock struct {
	receipt     *domain.OrderReceipt
	err         error
	gotCartID   string
	gotCustomer domain.CustomerInfo
}

func (c *checkoutMock) Checkout(_ context.Context, cartID string, customer domain.CustomerInfo) (*domain.OrderReceipt, error) {
	c.gotCartID = cartID
	c.gotCustomer = customer
	if c.err != nil {
		return nil, c.err
	}
	return c.receipt, nil
}

func newTestRouter(catalog CatalogAPI, carts CartAPI, checkout CheckoutAPI) http.Handler {
	timeout := 5 * time.Second
	return NewRouter(
		NewProductHandler(catalog, timeout),
		NewCartHandler(carts, timeout),
		NewCheckoutHandler(checkout, timeout),
		NewHealthHandler(func(context.Context) error { return nil }),
		timeout,
	)
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestListProducts_Success(t *testing.T) {
	catalog := catalogMock{products: []domain.Product{
		{ID: primitive.NewObjectID(), Title: "Classic Logo Tee", Price: 29.0, Category: "t-shirts"},
	}}
	router := newTestRouter(catalog, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodGet, "/api/products?category=t-shirts", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Classic Logo Tee", products[0].Title)
}

func TestListProducts_EmptyIsJSONArray(t *testing.T) {
	router := newTestRouter(catalogMock{}, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetProduct_InvalidID(t *testing.T) {
	catalog := catalogMock{err: repository.ErrInvalidID}
	router := newTestRouter(catalog, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodGet, "/api/products/zzz", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_id", decodeError(t, rec).Code)
}

func TestGetProduct_NotFound(t *testing.T) {
	catalog := catalogMock{err: repository.ErrProductNotFound}
	router := newTestRouter(catalog, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodGet, "/api/products/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product_not_found", decodeError(t, rec).Code)
}

func TestStoreErrorsAreNotLeaked(t *testing.T) {
	catalog := catalogMock{err: assert.AnError}
	router := newTestRouter(catalog, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "store_unavailable", resp.Code)
	assert.NotContains(t, resp.Error, assert.AnError.Error())
}

func TestListCategories_Success(t *testing.T) {
	catalog := catalogMock{categories: []domain.Category{{Name: "Hoodies", Slug: "hoodies"}}}
	router := newTestRouter(catalog, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var categories []domain.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "hoodies", categories[0].Slug)
}

func TestGetCart_Success(t *testing.T) {
	carts := &cartMock{cart: &domain.Cart{CartID: "abc", Items: []domain.CartItem{
		{ProductID: "p1", Size: domain.SizeM, Quantity: 2, PriceSnapshot: 29.0},
	}}}
	router := newTestRouter(catalogMock{}, carts, &checkoutMock{})

	rec := doRequest(t, router, http.MethodGet, "/api/cart/abc", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var cart domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, "abc", cart.CartID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddItem_Success(t *testing.T) {
	carts := &cartMock{cart: &domain.Cart{CartID: "abc"}}
	router := newTestRouter(catalogMock{}, carts, &checkoutMock{})

	rec := doRequest(t, router, http.MethodPost, "/api/cart/abc/items", map[string]interface{}{
		"product_id": "p1",
		"size":       "M",
		"quantity":   2,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p1", carts.gotProductID)
	assert.Equal(t, domain.SizeM, carts.gotSize)
	assert.Equal(t, 2, carts.gotQuantity)
}

func TestAddItem_QuantityDefaultsToOne(t *testing.T) {
	carts := &cartMock{cart: &domain.Cart{CartID: "abc"}}
	router := newTestRouter(catalogMock{}, carts, &checkoutMock{})

	rec := doRequest(t, router, http.MethodPost, "/api/cart/abc/items", map[string]interface{}{
		"product_id": "p1",
		"size":       "M",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, carts.gotQuantity)
}

func TestAddItem_ExplicitZeroQuantityRejected(t *testing.T) {
	router := newTestRouter(catalogMock{}, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodPost, "/api/cart/abc/items", map[string]interface{}{
		"product_id": "p1",
		"size":       "M",
		"quantity":   0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_quantity", decodeError(t, rec).Code)
}

func TestAddItem_InvalidSize(t *testing.T) {
	router := newTestRouter(catalogMock{}, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodPost, "/api/cart/abc/items", map[string]interface{}{
		"product_id": "p1",
		"size":       "XXXL",
		"quantity":   1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_size", decodeError(t, rec).Code)
}

func TestAddItem_InvalidJSONBody(t *testing.T) {
	router := newTestRouter(catalogMock{}, &cartMock{}, &checkoutMock{})

	req := httptest.NewRequest(http.MethodPost, "/api/cart/abc/items", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec).Code)
}

func TestAddItem_ProductNotFound(t *testing.T) {
	carts := &cartMock{err: repository.ErrProductNotFound}
	router := newTestRouter(catalogMock{}, carts, &checkoutMock{})

	rec := doRequest(t, router, http.MethodPost, "/api/cart/abc/items", map[string]interface{}{
		"product_id": "p1",
		"size":       "M",
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product_not_found", decodeError(t, rec).Code)
}

func TestUpdateItem_MissingQuantityRejected(t *testing.T) {
	router := newTestRouter(catalogMock{}, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodPut, "/api/cart/abc/items", map[string]interface{}{
		"product_id": "p1",
		"size":       "M",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_quantity", decodeError(t, rec).Code)
}

func TestUpdateItem_ZeroQuantityAllowed(t *testing.T) {
	carts := &cartMock{cart: &domain.Cart{CartID: "abc"}}
	router := newTestRouter(catalogMock{}, carts, &checkoutMock{})

	rec := doRequest(t, router, http.MethodPut, "/api/cart/abc/items", map[string]interface{}{
		"product_id": "p1",
		"size":       "M",
		"quantity":   0,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, carts.gotQuantity)
}

func TestUpdateItem_CartNotFound(t *testing.T) {
	carts := &cartMock{err: repository.ErrCartNotFound}
	router := newTestRouter(catalogMock{}, carts, &checkoutMock{})

	rec := doRequest(t, router, http.MethodPut, "/api/cart/missing/items", map[string]interface{}{
		"product_id": "p1",
		"size":       "M",
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "cart_not_found", decodeError(t, rec).Code)
}

func TestRemoveItem_Success(t *testing.T) {
	carts := &cartMock{cart: &domain.Cart{CartID: "abc"}}
	router := newTestRouter(catalogMock{}, carts, &checkoutMock{})

	rec := doRequest(t, router, http.MethodDelete, "/api/cart/abc/items", map[string]interface{}{
		"product_id": "p1",
		"size":       "M",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "p1", carts.gotProductID)
	assert.Equal(t, domain.SizeM, carts.gotSize)
}

func TestCheckout_Success(t *testing.T) {
	checkout := &checkoutMock{receipt: &domain.OrderReceipt{
		OrderID: primitive.NewObjectID().Hex(),
		Status:  domain.OrderStatusReceived,
		Total:   98.0,
	}}
	router := newTestRouter(catalogMock{}, &cartMock{}, checkout)

	rec := doRequest(t, router, http.MethodPost, "/api/checkout", map[string]interface{}{
		"cart_id": "xyz",
		"customer": map[string]string{
			"name":        "Ada Lovelace",
			"email":       "ada@example.com",
			"address":     "12 Analytical St",
			"city":        "London",
			"country":     "UK",
			"postal_code": "N1 9GU",
		},
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var receipt domain.OrderReceipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, 98.0, receipt.Total)
	assert.Equal(t, domain.OrderStatusReceived, receipt.Status)
	assert.Equal(t, "xyz", checkout.gotCartID)
	assert.Equal(t, "ada@example.com", checkout.gotCustomer.Email)
}

func TestCheckout_MissingCartID(t *testing.T) {
	router := newTestRouter(catalogMock{}, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodPost, "/api/checkout", map[string]interface{}{
		"customer": map[string]string{
			"name": "Ada", "email": "a@b.c", "address": "x", "city": "y", "country": "z", "postal_code": "1",
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_cart_id", decodeError(t, rec).Code)
}

func TestCheckout_MissingCustomerField(t *testing.T) {
	router := newTestRouter(catalogMock{}, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodPost, "/api/checkout", map[string]interface{}{
		"cart_id": "xyz",
		"customer": map[string]string{
			"name": "Ada", "address": "x", "city": "y", "country": "z", "postal_code": "1",
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "missing_customer_field", resp.Code)
	assert.Contains(t, resp.Error, "email")
}

func TestCheckout_EmptyCart(t *testing.T) {
	checkout := &checkoutMock{err: service.ErrEmptyCart}
	router := newTestRouter(catalogMock{}, &cartMock{}, checkout)

	rec := doRequest(t, router, http.MethodPost, "/api/checkout", map[string]interface{}{
		"cart_id": "xyz",
		"customer": map[string]string{
			"name": "Ada", "email": "a@b.c", "address": "x", "city": "y", "country": "z", "postal_code": "1",
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty_cart", decodeError(t, rec).Code)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(catalogMock{}, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Clothing Shop API running")

	rec = doRequest(t, router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	router := newTestRouter(catalogMock{}, &cartMock{}, &checkoutMock{})

	rec := doRequest(t, router, http.MethodGet, "/", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
