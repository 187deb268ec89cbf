package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ashrafbing/crystalloom/internal/domain/order"
)

type cartItemRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"qty"`
}

type placeOrderRequest struct {
	UserID   string             `json:"userId"`
	Email    string             `json:"email"`
	Cart     []cartItemRequest  `json:"cart"`
	Total    decimal.Decimal    `json:"total"`
	Shipping order.ShippingInfo `json:"shippingInfo"`
}

type placeOrderResponse struct {
	OrderID string `json:"orderId"`
	Invoice string `json:"invoice"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	cart := make([]order.CartItem, len(req.Cart))
	for i, item := range req.Cart {
		if item.Quantity <= 0 {
			writeError(w, r, http.StatusBadRequest, "quantity must be greater than 0")
			return
		}
		cart[i] = order.CartItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	result, err := h.orders.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		UserID:   userID,
		Email:    req.Email,
		Cart:     cart,
		Total:    req.Total,
		Shipping: req.Shipping,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, placeOrderResponse{
		OrderID: result.OrderID.String(),
		Invoice: result.Invoice,
	})
}

type orderItemResponse struct {
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type statusEventResponse struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type orderResponse struct {
	ID        string                `json:"id"`
	Username  string                `json:"username"`
	Total     decimal.Decimal       `json:"total"`
	Shipping  order.ShippingInfo    `json:"shippingInfo"`
	Status    string                `json:"status"`
	CreatedAt time.Time             `json:"createdAt"`
	Items     []orderItemResponse   `json:"items"`
	History   []statusEventResponse `json:"statusHistory"`
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), userID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		items := make([]orderItemResponse, len(o.Items))
		for j, item := range o.Items {
			items[j] = orderItemResponse{
				ProductName: item.ProductName,
				Price:       item.Price,
				Quantity:    item.Quantity,
			}
		}

		history := make([]statusEventResponse, len(o.History))
		for j, ev := range o.History {
			history[j] = statusEventResponse{
				Status:    string(ev.Status),
				CreatedAt: ev.CreatedAt,
			}
		}

		resp[i] = orderResponse{
			ID:        o.ID.String(),
			Username:  o.Username,
			Total:     o.Total,
			Shipping:  o.Shipping,
			Status:    string(o.Status),
			CreatedAt: o.CreatedAt,
			Items:     items,
			History:   history,
		}
	}

	writeJSON(w, r, http.StatusOK, resp)
}
