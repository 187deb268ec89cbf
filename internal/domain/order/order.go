package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enumerates order lifecycle states. Orders are created as
// StatusConfirmed; later transitions are appended by fulfilment.
type Status string

// StatusConfirmed is the initial status of every placed order.
const StatusConfirmed Status = "confirmed"

// ShippingInfo is the delivery address block captured at checkout.
type ShippingInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

// Order is the order header. Username is snapshotted from the user record at
// placement time and deliberately not kept in sync with later profile edits.
type Order struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Username  string
	Total     decimal.Decimal
	Shipping  ShippingInfo
	Status    Status
	CreatedAt time.Time
}

// Item is a single order line. Immutable once written.
type Item struct {
	OrderID     uuid.UUID
	Username    string
	ProductName string
	Price       decimal.Decimal
	Quantity    int
}

// StatusEvent is one row of the append-only status history. The first event
// for any order is always StatusConfirmed.
type StatusEvent struct {
	OrderID   uuid.UUID
	Status    Status
	CreatedAt time.Time
}

// WithDetails bundles an order with its lines and status history for listing.
type WithDetails struct {
	Order
	Items   []Item
	History []StatusEvent
}

// Repository defines persistence operations for orders. There is no
// cross-table transaction primitive: each call commits independently, so a
// failure between CreateOrder and CreateItems leaves an orphaned header.
type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	CreateItems(ctx context.Context, items []Item) error
	CreateStatusEvent(ctx context.Context, ev *StatusEvent) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]WithDetails, error)
}
