// Package notify dispatches order confirmations in the background.
//
// The order workflow must not wait on (or fail with) mail delivery, so
// confirmations go through a bounded in-process queue drained by a single
// worker. Delivery failures are logged and dropped, never retried.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/Ashrafbing/crystalloom/internal/domain/order"
)

// Mailer delivers a single order confirmation.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, c order.Confirmation) error
}

// Dispatcher queues confirmations for background delivery. It implements
// order.Notifier.
type Dispatcher struct {
	mailer Mailer
	lg     *zap.Logger
	queue  chan order.Confirmation
}

var _ order.Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with the given queue capacity.
func NewDispatcher(mailer Mailer, lg *zap.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		mailer: mailer,
		lg:     lg,
		queue:  make(chan order.Confirmation, queueSize),
	}
}

// Enqueue submits a confirmation for delivery. It never blocks: when the
// queue is full the confirmation is dropped with a warning.
func (d *Dispatcher) Enqueue(c order.Confirmation) {
	select {
	case d.queue <- c:
	default:
		d.lg.Warn("notification queue full, dropping confirmation",
			zap.String("to", c.To),
			zap.String("order_id", c.OrderID.String()),
		)
	}
}

// Run drains the queue until ctx is cancelled. Queued confirmations still
// pending at cancellation are abandoned.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-d.queue:
			if err := d.mailer.SendOrderConfirmation(ctx, c); err != nil {
				d.lg.Warn("confirmation delivery failed",
					zap.String("to", c.To),
					zap.String("order_id", c.OrderID.String()),
					zap.Error(err),
				)
				continue
			}
			d.lg.Info("confirmation sent",
				zap.String("to", c.To),
				zap.String("order_id", c.OrderID.String()),
			)
		}
	}
}
