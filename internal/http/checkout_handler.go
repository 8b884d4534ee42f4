package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/flamesco/shopfront/internal/domain"
)

type CheckoutAPI interface {
	Checkout(ctx context.Context, cartID string, customer domain.CustomerInfo) (*domain.OrderReceipt, error)
}

type CheckoutHandler struct {
	checkout CheckoutAPI
	timeout  time.Duration
}

func NewCheckoutHandler(checkout CheckoutAPI, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

type CustomerInfoDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type CheckoutRequestDTO struct {
	CartID   string          `json:"cart_id"`
	Customer CustomerInfoDTO `json:"customer"`
}

// POST /api/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.CartID == "" {
		respondError(w, http.StatusBadRequest, "missing_cart_id", "cart_id is required")
		return
	}
	if field, ok := missingCustomerField(req.Customer); !ok {
		respondError(w, http.StatusBadRequest, "missing_customer_field", field+" is required")
		return
	}

	// Email stays free text on purpose; presence is the only check.
	customer := domain.CustomerInfo{
		Name:       req.Customer.Name,
		Email:      req.Customer.Email,
		Address:    req.Customer.Address,
		City:       req.Customer.City,
		Country:    req.Customer.Country,
		PostalCode: req.Customer.PostalCode,
	}

	receipt, err := h.checkout.Checkout(ctx, req.CartID, customer)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, receipt)
}

func missingCustomerField(c CustomerInfoDTO) (string, bool) {
	switch {
	case c.Name == "":
		return "name", false
	case c.Email == "":
		return "email", false
	case c.Address == "":
		return "address", false
	case c.City == "":
		return "city", false
	case c.Country == "":
		return "country", false
	case c.PostalCode == "":
		return "postal_code", false
	}
	return "", true
}
