package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JoinedAddress renders the shipping address as a single line in the
// "address, city, state - pincode" form used by invoices and analytics rows.
func (s ShippingInfo) JoinedAddress() string {
	return fmt.Sprintf("%s, %s, %s - %s", s.Address, s.City, s.State, s.Pincode)
}

// BuildInvoice renders the deterministic plain-text receipt for an order:
// a shipping block, one line per item, and the grand total.
func BuildInvoice(orderID uuid.UUID, cart []CartItem, total decimal.Decimal, shipping ShippingInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Invoice for Order: %s\n\n", orderID)
	b.WriteString("Shipping Info:\n")
	fmt.Fprintf(&b, "Name: %s\n", shipping.Name)
	fmt.Fprintf(&b, "Address: %s\n", shipping.JoinedAddress())
	fmt.Fprintf(&b, "Phone: %s\n\n", shipping.Phone)

	b.WriteString("Items:\n")
	for _, item := range cart {
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "%s - ₹%s x %d = ₹%s\n", item.Name, item.Price, item.Quantity, subtotal)
	}

	fmt.Fprintf(&b, "\nTotal: ₹%s\n", total)

	return b.String()
}
