package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Ashrafbing/crystalloom/internal/domain/pricing"
)

type productResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Discounted decimal.Decimal `json:"discountedPrice"`
	PercentOff int64           `json:"percentOff"`
}

// listProducts returns the catalog with display pricing applied.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	resp := make([]productResponse, len(products))
	for i, p := range products {
		display := pricing.FormatPriceDisplay(p.Price, h.pricing.DiscountedPrice(p))
		resp[i] = productResponse{
			ID:         p.ID,
			Name:       p.Name,
			Price:      display.Original,
			Discounted: display.Discounted,
			PercentOff: display.PercentOff,
		}
	}

	writeJSON(w, r, http.StatusOK, resp)
}
