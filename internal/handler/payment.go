package handler

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type createPaymentOrderRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type paymentOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (h *Handler) createPaymentOrder(w http.ResponseWriter, r *http.Request) {
	var req createPaymentOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, r, http.StatusBadRequest, "amount must be greater than 0")
		return
	}

	o, err := h.payments.CreatePaymentOrder(r.Context(), req.Amount, req.Currency)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, paymentOrderResponse{
		ID:       o.ID,
		Amount:   o.Amount,
		Currency: o.Currency,
	})
}
