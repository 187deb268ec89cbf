// Package razorpay is a minimal client for the Razorpay Orders API, covering
// only payment-order creation. Amounts are in paise.
package razorpay

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/Ashrafbing/crystalloom/internal/domain/payment"
)

// DefaultBaseURL is the production Razorpay API endpoint.
const DefaultBaseURL = "https://api.razorpay.com"

var _ payment.Gateway = (*Client)(nil)

// Client talks to the Razorpay REST API using key-pair basic auth.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// NewClient creates a Client for the given API key pair. baseURL overrides
// the production endpoint when non-empty (used in tests).
func NewClient(keyID, keySecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateOrder creates a payment order at the gateway.
func (c *Client) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (*payment.Order, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("amount", func(e *jx.Encoder) { e.Int64(amountMinorUnits) })
		e.Field("currency", func(e *jx.Encoder) { e.Str(currency) })
		e.Field("receipt", func(e *jx.Encoder) { e.Str(receipt) })
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(e.Bytes()))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("gateway returned status %d: %s", resp.StatusCode, body)
	}

	return decodeOrder(body)
}

// decodeOrder extracts id, amount, and currency from the gateway response,
// skipping fields this client does not use.
func decodeOrder(body []byte) (*payment.Order, error) {
	var o payment.Order
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			v, err := d.Str()
			if err != nil {
				return err
			}
			o.ID = v
		case "amount":
			v, err := d.Int64()
			if err != nil {
				return err
			}
			o.Amount = v
		case "currency":
			v, err := d.Str()
			if err != nil {
				return err
			}
			o.Currency = v
		default:
			return d.Skip()
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode order")
	}
	if o.ID == "" {
		return nil, errors.New("gateway response missing order id")
	}
	return &o, nil
}
