package mail

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTemplate(t *testing.T) {
	var buf bytes.Buffer
	err := resetTmpl.Execute(&buf, struct {
		Code         string
		SupportEmail string
	}{Code: "482913", SupportEmail: SupportEmail})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "482913")
	assert.Contains(t, out, "10 minutes")
	assert.Contains(t, out, SupportEmail)
}

func TestConfirmationTemplate(t *testing.T) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Name         string
		OrderID      string
		OrderDate    string
		Address      string
		City         string
		State        string
		Pincode      string
		Phone        string
		Total        decimal.Decimal
		Items        []confirmationItem
		SupportEmail string
	}{
		Name:      "Priya Sharma",
		OrderID:   uuid.NewString(),
		OrderDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC).Format("02/01/2006"),
		Address:   "14 MG Road",
		City:      "Jaipur",
		State:     "Rajasthan",
		Pincode:   "302001",
		Phone:     "9876543210",
		Total:     decimal.NewFromInt(9837),
		Items: []confirmationItem{
			{Name: "Crystal Bracelet", Price: decimal.NewFromInt(3519), Quantity: 2, Subtotal: decimal.NewFromInt(7038)},
		},
		SupportEmail: SupportEmail,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Priya Sharma")
	assert.Contains(t, out, "Crystal Bracelet")
	assert.Contains(t, out, "7038")
	assert.Contains(t, out, "12/03/2026")
	assert.Contains(t, out, "302001")
}
