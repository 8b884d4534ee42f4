package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/flamesco/shopfront/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CartAPI interface {
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, size domain.Size, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, cartID, productID string, size domain.Size, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string, size domain.Size) (*domain.Cart, error)
}

type CartHandler struct {
	carts   CartAPI
	timeout time.Duration
}

func NewCartHandler(carts CartAPI, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	// Pointer so an omitted quantity defaults to 1 while an explicit 0 is
	// rejected.
	Quantity *int `json:"quantity"`
}

type UpdateItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  *int   `json:"quantity"`
}

type RemoveItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
}

// GET /api/cart/{cartID}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := chi.URLParam(r, "cartID")

	cart, err := h.carts.GetCart(ctx, cartID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// POST /api/cart/{cartID}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := chi.URLParam(r, "cartID")

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	size := domain.Size(req.Size)
	if !size.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_size", "size must be one of XS, S, M, L, XL, XXL")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	cart, err := h.carts.AddItem(ctx, cartID, req.ProductID, size, quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// PUT /api/cart/{cartID}/items
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := chi.URLParam(r, "cartID")

	var req UpdateItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	size := domain.Size(req.Size)
	if !size.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_size", "size must be one of XS, S, M, L, XL, XXL")
		return
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be zero or greater")
		return
	}

	cart, err := h.carts.UpdateItem(ctx, cartID, req.ProductID, size, *req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// DELETE /api/cart/{cartID}/items
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := chi.URLParam(r, "cartID")

	var req RemoveItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	size := domain.Size(req.Size)
	if !size.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_size", "size must be one of XS, S, M, L, XL, XXL")
		return
	}

	cart, err := h.carts.RemoveItem(ctx, cartID, req.ProductID, size)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}
