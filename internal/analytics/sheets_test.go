package analytics

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashrafbing/crystalloom/internal/domain/order"
)

func TestAppendSignup(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewSheetsClient(srv.URL)
	at := time.Date(2026, 3, 12, 10, 30, 0, 0, time.UTC)
	require.NoError(t, c.AppendSignup(context.Background(), "Priya", "priya@example.com", at))

	assert.Equal(t, "signup", got["action"])
	assert.Equal(t, "Priya", got["name"])
	assert.Equal(t, "priya@example.com", got["email"])
	assert.Equal(t, "2026-03-12T10:30:00Z", got["time"])
}

func TestAppendOrder(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewSheetsClient(srv.URL)
	orderID := uuid.New()
	rec := order.Record{
		OrderID: orderID,
		Name:    "Priya Sharma",
		Email:   "priya@example.com",
		Phone:   "9876543210",
		Address: "14 MG Road, Jaipur, Rajasthan - 302001",
		Total:   decimal.NewFromInt(9837),
		Items: []order.CartItem{
			{Name: "Crystal Bracelet", Price: decimal.NewFromInt(3519), Quantity: 2},
			{Name: "Healing Pendant", Price: decimal.NewFromInt(2799), Quantity: 1},
		},
		At: time.Date(2026, 3, 12, 10, 30, 0, 0, time.UTC),
	}
	require.NoError(t, c.AppendOrder(context.Background(), rec))

	assert.Equal(t, "order", got["action"])
	assert.Equal(t, orderID.String(), got["orderId"])
	assert.Equal(t, "Crystal Bracelet x 2 @ ₹3519; Healing Pendant x 1 @ ₹2799", got["items"])
	assert.Equal(t, "9837", got["total"])
}

func TestAppend_NonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewSheetsClient(srv.URL)
	err := c.AppendSignup(context.Background(), "Priya", "priya@example.com", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
