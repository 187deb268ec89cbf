package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrGatewayNotConfigured is returned when no payment gateway credentials
// were provided at startup.
var ErrGatewayNotConfigured = errors.New("payment gateway not configured")

// DefaultCurrency is used when the caller leaves the currency empty.
const DefaultCurrency = "INR"

// Order is a payment-intent record created at the gateway. Amount is in the
// gateway's minor unit (paise for INR).
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway creates payment-intent records at the external provider.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (*Order, error)
}

// Service converts storefront amounts into gateway orders.
type Service struct {
	gateway Gateway
	now     func() time.Time
}

// NewService creates a payment Service. gateway may be nil when the provider
// is not configured; CreatePaymentOrder then fails with
// ErrGatewayNotConfigured.
func NewService(gateway Gateway) *Service {
	return &Service{
		gateway: gateway,
		now:     time.Now,
	}
}

// CreatePaymentOrder creates a gateway order for the given whole-rupee amount.
// The gateway expects minor units, so the amount is multiplied by 100.
func (s *Service) CreatePaymentOrder(ctx context.Context, amount decimal.Decimal, currency string) (*Order, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	minor := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	receipt := fmt.Sprintf("receipt_%d", s.now().UnixMilli())

	o, err := s.gateway.CreateOrder(ctx, minor, currency, receipt)
	if err != nil {
		return nil, errors.Wrap(err, "create gateway order")
	}
	return o, nil
}
