// Package handler exposes the storefront API over HTTP.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/Ashrafbing/crystalloom/internal/domain/order"
	"github.com/Ashrafbing/crystalloom/internal/domain/otp"
	"github.com/Ashrafbing/crystalloom/internal/domain/payment"
	"github.com/Ashrafbing/crystalloom/internal/domain/pricing"
	"github.com/Ashrafbing/crystalloom/internal/domain/product"
	"github.com/Ashrafbing/crystalloom/internal/domain/user"
)

// Handler bundles the domain services behind the HTTP surface.
type Handler struct {
	accounts *user.Service
	orders   *order.Service
	reset    *otp.Service
	payments *payment.Service
	products product.Repository
	pricing  *pricing.Calculator
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	accounts *user.Service,
	orders *order.Service,
	reset *otp.Service,
	payments *payment.Service,
	products product.Repository,
	calc *pricing.Calculator,
) *Handler {
	return &Handler{
		accounts: accounts,
		orders:   orders,
		reset:    reset,
		payments: payments,
		products: products,
		pricing:  calc,
	}
}

// Routes returns the chi router for the /api surface.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Put("/user/{id}/personal", h.updatePersonalInfo)
	r.Get("/user/{id}/orders", h.listOrders)

	r.Get("/products", h.listProducts)
	r.Post("/order", h.placeOrder)
	r.Post("/payment/order", h.createPaymentOrder)

	r.Post("/forgot-password", h.forgotPassword)
	r.Post("/verify-otp", h.verifyOTP)
	r.Post("/reset-password", h.resetPassword)

	return r
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zctx.From(r.Context()).Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorResponse{Error: message})
}

// decode reads the JSON request body into dst.
func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// respondDomainError maps domain errors onto HTTP statuses. Unknown errors
// are logged and reported as an opaque 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "user not found")
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, r, http.StatusBadRequest, "email already registered")
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, order.ErrEmptyCart):
		writeError(w, r, http.StatusBadRequest, "cart is empty")
	case errors.Is(err, product.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "product not found")
	case errors.Is(err, otp.ErrInvalidOrExpired):
		writeError(w, r, http.StatusBadRequest, "invalid or expired OTP")
	case errors.Is(err, otp.ErrSendFailed):
		writeError(w, r, http.StatusBadGateway, "failed to send OTP")
	case errors.Is(err, payment.ErrGatewayNotConfigured):
		writeError(w, r, http.StatusInternalServerError, "payment gateway not configured")
	default:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
