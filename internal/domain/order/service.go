package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ashrafbing/crystalloom/internal/domain/user"
)

// ErrEmptyCart is returned when an order is placed with no line items.
var ErrEmptyCart = errors.New("cart is empty")

// CartItem is one checkout line as submitted by the storefront.
type CartItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"qty"`
}

// Record is the flattened order shape appended to the analytics sink.
type Record struct {
	OrderID uuid.UUID
	Name    string
	Email   string
	Phone   string
	Address string
	Total   decimal.Decimal
	Items   []CartItem
	At      time.Time
}

// AnalyticsSink receives flattened order records. Appends are best-effort:
// the workflow logs failures and continues.
type AnalyticsSink interface {
	AppendOrder(ctx context.Context, rec Record) error
}

// Confirmation carries everything the notification template needs.
type Confirmation struct {
	To       string
	Name     string
	Subject  string
	OrderID  uuid.UUID
	Date     time.Time
	Shipping ShippingInfo
	Total    decimal.Decimal
	Items    []CartItem
}

// Notifier dispatches order confirmations in the background. Enqueue must not
// block and must not surface delivery failures to the caller.
type Notifier interface {
	Enqueue(c Confirmation)
}

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	UserID   uuid.UUID
	Email    string
	Cart     []CartItem
	Total    decimal.Decimal
	Shipping ShippingInfo
}

// PlaceOrderResult holds the output of a successfully placed order.
type PlaceOrderResult struct {
	OrderID uuid.UUID
	Invoice string
}

// Service orchestrates the order placement saga.
type Service struct {
	users         user.Repository
	orders        Repository
	analytics     AnalyticsSink
	notifier      Notifier
	operatorEmail string
	now           func() time.Time
}

// NewService creates an order Service. operatorEmail receives a copy of every
// order confirmation.
func NewService(
	users user.Repository,
	orders Repository,
	analytics AnalyticsSink,
	notifier Notifier,
	operatorEmail string,
) *Service {
	return &Service{
		users:         users,
		orders:        orders,
		analytics:     analytics,
		notifier:      notifier,
		operatorEmail: operatorEmail,
		now:           time.Now,
	}
}

// PlaceOrder runs the checkout saga: resolve username, persist the order
// header, lines, and initial status event in that order, append a best-effort
// analytics record, build the invoice, and queue two confirmation emails.
//
// The three writes commit independently. A failure mid-sequence aborts the
// remaining steps and surfaces the first error; the already-written rows stay
// (an orphaned header with no items is an accepted outcome, never compensated).
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if len(req.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	u, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, errors.Wrap(err, "resolve username")
	}

	now := s.now()
	o := &Order{
		ID:        uuid.New(),
		UserID:    req.UserID,
		Username:  u.Name,
		Total:     req.Total,
		Shipping:  req.Shipping,
		Status:    StatusConfirmed,
		CreatedAt: now,
	}
	if err := s.orders.CreateOrder(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	items := make([]Item, len(req.Cart))
	for i, line := range req.Cart {
		items[i] = Item{
			OrderID:     o.ID,
			Username:    u.Name,
			ProductName: line.Name,
			Price:       line.Price,
			Quantity:    line.Quantity,
		}
	}
	if err := s.orders.CreateItems(ctx, items); err != nil {
		return nil, errors.Wrap(err, "create order items")
	}

	if err := s.orders.CreateStatusEvent(ctx, &StatusEvent{
		OrderID:   o.ID,
		Status:    StatusConfirmed,
		CreatedAt: now,
	}); err != nil {
		return nil, errors.Wrap(err, "create status event")
	}

	// Spreadsheet bookkeeping must never fail the order.
	if err := s.analytics.AppendOrder(ctx, Record{
		OrderID: o.ID,
		Name:    req.Shipping.Name,
		Email:   req.Email,
		Phone:   req.Shipping.Phone,
		Address: req.Shipping.JoinedAddress(),
		Total:   req.Total,
		Items:   req.Cart,
		At:      now,
	}); err != nil {
		zctx.From(ctx).Warn("order analytics append failed",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}

	invoice := BuildInvoice(o.ID, req.Cart, req.Total, req.Shipping)

	confirmation := Confirmation{
		To:       req.Email,
		Name:     req.Shipping.Name,
		Subject:  "Order Confirmation",
		OrderID:  o.ID,
		Date:     now,
		Shipping: req.Shipping,
		Total:    req.Total,
		Items:    req.Cart,
	}
	s.notifier.Enqueue(confirmation)

	operatorCopy := confirmation
	operatorCopy.To = s.operatorEmail
	operatorCopy.Name = "Admin"
	operatorCopy.Subject = "New Order Received"
	s.notifier.Enqueue(operatorCopy)

	return &PlaceOrderResult{
		OrderID: o.ID,
		Invoice: invoice,
	}, nil
}

// ListOrders returns all orders for a user, including line items and the full
// status history.
func (s *Service) ListOrders(ctx context.Context, userID uuid.UUID) ([]WithDetails, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}
