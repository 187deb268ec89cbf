package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ashrafbing/crystalloom/internal/domain/order"
)

type mockMailer struct {
	mu   sync.Mutex
	sent []order.Confirmation
	err  error
	done chan struct{}
}

func (m *mockMailer) SendOrderConfirmation(_ context.Context, c order.Confirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, c)
	if m.done != nil {
		m.done <- struct{}{}
	}
	return nil
}

func (m *mockMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestDispatcher_Delivers(t *testing.T) {
	mailer := &mockMailer{done: make(chan struct{}, 2)}
	d := NewDispatcher(mailer, zap.NewNop(), 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	c := order.Confirmation{To: "priya@example.com", OrderID: uuid.New(), Subject: "Order Confirmation"}
	d.Enqueue(c)

	select {
	case <-mailer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation was not delivered")
	}

	require.Equal(t, 1, mailer.sentCount())
	assert.Equal(t, "priya@example.com", mailer.sent[0].To)
}

func TestDispatcher_EnqueueNeverBlocksWhenFull(t *testing.T) {
	// No worker running: the queue fills and further enqueues must drop.
	d := NewDispatcher(&mockMailer{}, zap.NewNop(), 1)

	done := make(chan struct{})
	go func() {
		for range 10 {
			d.Enqueue(order.Confirmation{To: "x@example.com", OrderID: uuid.New()})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestDispatcher_DeliveryFailureDoesNotStopWorker(t *testing.T) {
	mailer := &mockMailer{err: errors.New("relay down")}
	d := NewDispatcher(mailer, zap.NewNop(), 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	d.Enqueue(order.Confirmation{To: "a@example.com", OrderID: uuid.New()})

	// Clear the failure and verify the worker is still draining.
	time.Sleep(50 * time.Millisecond)
	mailer.mu.Lock()
	mailer.err = nil
	mailer.done = make(chan struct{}, 1)
	mailer.mu.Unlock()

	d.Enqueue(order.Confirmation{To: "b@example.com", OrderID: uuid.New()})

	select {
	case <-mailer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker stopped after a delivery failure")
	}
}
