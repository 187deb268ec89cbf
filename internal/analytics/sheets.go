// Package analytics appends signup and order records to an external
// spreadsheet webhook (a Google Apps Script endpoint in production).
//
// Every append is best-effort from the caller's point of view: services log
// and swallow errors returned from here.
package analytics

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/Ashrafbing/crystalloom/internal/domain/order"
	"github.com/Ashrafbing/crystalloom/internal/domain/user"
)

var (
	_ user.AnalyticsSink  = (*SheetsClient)(nil)
	_ order.AnalyticsSink = (*SheetsClient)(nil)
)

// SheetsClient posts flattened JSON records to a spreadsheet webhook.
type SheetsClient struct {
	url    string
	client *http.Client
}

// NewSheetsClient creates a client for the given webhook URL.
func NewSheetsClient(url string) *SheetsClient {
	return &SheetsClient{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AppendSignup records a new registration.
func (c *SheetsClient) AppendSignup(ctx context.Context, name, email string, at time.Time) error {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("action", func(e *jx.Encoder) { e.Str("signup") })
		e.Field("name", func(e *jx.Encoder) { e.Str(name) })
		e.Field("email", func(e *jx.Encoder) { e.Str(email) })
		e.Field("time", func(e *jx.Encoder) { e.Str(at.UTC().Format(time.RFC3339)) })
	})
	return c.post(ctx, e.Bytes())
}

// AppendOrder records a placed order as a single flattened row. Items collapse
// into one "name x qty @ ₹price; ..." cell.
func (c *SheetsClient) AppendOrder(ctx context.Context, rec order.Record) error {
	lines := make([]string, len(rec.Items))
	for i, item := range rec.Items {
		lines[i] = fmt.Sprintf("%s x %d @ ₹%s", item.Name, item.Quantity, item.Price)
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("action", func(e *jx.Encoder) { e.Str("order") })
		e.Field("orderId", func(e *jx.Encoder) { e.Str(rec.OrderID.String()) })
		e.Field("name", func(e *jx.Encoder) { e.Str(rec.Name) })
		e.Field("email", func(e *jx.Encoder) { e.Str(rec.Email) })
		e.Field("phone", func(e *jx.Encoder) { e.Str(rec.Phone) })
		e.Field("address", func(e *jx.Encoder) { e.Str(rec.Address) })
		e.Field("total", func(e *jx.Encoder) { e.Str(rec.Total.String()) })
		e.Field("items", func(e *jx.Encoder) { e.Str(strings.Join(lines, "; ")) })
		e.Field("time", func(e *jx.Encoder) { e.Str(rec.At.UTC().Format(time.RFC3339)) })
	})
	return c.post(ctx, e.Bytes())
}

func (c *SheetsClient) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "post record")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Nop is the sink used when no webhook is configured. All appends succeed
// without doing anything.
type Nop struct{}

var (
	_ user.AnalyticsSink  = Nop{}
	_ order.AnalyticsSink = Nop{}
)

// AppendSignup implements user.AnalyticsSink.
func (Nop) AppendSignup(context.Context, string, string, time.Time) error { return nil }

// AppendOrder implements order.AnalyticsSink.
func (Nop) AppendOrder(context.Context, order.Record) error { return nil }
