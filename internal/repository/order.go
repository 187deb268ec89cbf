package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ashrafbing/crystalloom/internal/domain/order"
)

const (
	insertOrderSQL = `INSERT INTO orders (id, user_id, username, total, shipping, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	insertOrderItemSQL = `INSERT INTO order_items (order_id, username, product_name, price, quantity)
		VALUES ($1, $2, $3, $4, $5)`

	insertStatusEventSQL = `INSERT INTO order_status_history (order_id, status, created_at)
		VALUES ($1, $2, $3)`

	listOrdersByUserSQL = `SELECT id, user_id, username, total, shipping, status, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	listItemsByOrderSQL = `SELECT order_id, username, product_name, price, quantity
		FROM order_items WHERE order_id = ANY($1) ORDER BY id`

	listHistoryByOrderSQL = `SELECT order_id, status, created_at
		FROM order_status_history WHERE order_id = ANY($1) ORDER BY created_at`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. Each
// method is a single independent statement; callers sequence them and accept
// the documented partial-failure states.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// CreateOrder persists the order header. The shipping block is stored as
// JSONB.
func (r *OrderRepository) CreateOrder(ctx context.Context, o *order.Order) error {
	shipping, err := json.Marshal(o.Shipping)
	if err != nil {
		return fmt.Errorf("marshaling shipping info: %w", err)
	}

	_, err = r.pool.Exec(ctx, insertOrderSQL,
		o.ID, o.UserID, o.Username, o.Total, shipping, string(o.Status), o.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating order %s: %w", o.ID, err)
	}
	return nil
}

// CreateItems persists the order lines in one batch.
func (r *OrderRepository) CreateItems(ctx context.Context, items []order.Item) error {
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(insertOrderItemSQL,
			item.OrderID, item.Username, item.ProductName, item.Price, item.Quantity)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("creating order items: %w", err)
	}
	return nil
}

// CreateStatusEvent appends one row to the status history.
func (r *OrderRepository) CreateStatusEvent(ctx context.Context, ev *order.StatusEvent) error {
	_, err := r.pool.Exec(ctx, insertStatusEventSQL, ev.OrderID, string(ev.Status), ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating status event for %s: %w", ev.OrderID, err)
	}
	return nil
}

// ListByUser returns the user's orders newest-first, each with its items and
// full status history.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]order.WithDetails, error) {
	rows, err := r.pool.Query(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders for %s: %w", userID, err)
	}

	headers, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("listing orders for %s: %w", userID, err)
	}
	if len(headers) == 0 {
		return []order.WithDetails{}, nil
	}

	ids := make([]uuid.UUID, len(headers))
	byID := make(map[uuid.UUID]*order.WithDetails, len(headers))
	result := make([]order.WithDetails, len(headers))
	for i, h := range headers {
		ids[i] = h.ID
		result[i] = order.WithDetails{Order: h}
		byID[h.ID] = &result[i]
	}

	itemRows, err := r.pool.Query(ctx, listItemsByOrderSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	items, err := pgx.CollectRows(itemRows, scanOrderItem)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	for _, item := range items {
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	historyRows, err := r.pool.Query(ctx, listHistoryByOrderSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("listing status history: %w", err)
	}
	events, err := pgx.CollectRows(historyRows, scanStatusEvent)
	if err != nil {
		return nil, fmt.Errorf("listing status history: %w", err)
	}
	for _, ev := range events {
		if o, ok := byID[ev.OrderID]; ok {
			o.History = append(o.History, ev)
		}
	}

	return result, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o        order.Order
		shipping []byte
		status   string
	)
	err := row.Scan(&o.ID, &o.UserID, &o.Username, &o.Total, &shipping, &status, &o.CreatedAt)
	if err != nil {
		return o, err
	}
	if err := json.Unmarshal(shipping, &o.Shipping); err != nil {
		return o, fmt.Errorf("unmarshaling shipping info: %w", err)
	}
	o.Status = order.Status(status)
	return o, nil
}

func scanOrderItem(row pgx.CollectableRow) (order.Item, error) {
	var item order.Item
	err := row.Scan(&item.OrderID, &item.Username, &item.ProductName, &item.Price, &item.Quantity)
	return item, err
}

func scanStatusEvent(row pgx.CollectableRow) (order.StatusEvent, error) {
	var (
		ev     order.StatusEvent
		status string
	)
	err := row.Scan(&ev.OrderID, &status, &ev.CreatedAt)
	ev.Status = order.Status(status)
	return ev, err
}
