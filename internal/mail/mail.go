// Package mail sends transactional email over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/go-faster/errors"
	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"

	"github.com/Ashrafbing/crystalloom/internal/domain/order"
)

// SupportEmail is printed in the footer of every outgoing message.
const SupportEmail = "support@crystalloom.com"

var (
	resetTmpl        = template.Must(template.New("reset").Parse(resetCodeTemplate))
	confirmationTmpl = template.Must(template.New("confirmation").Parse(orderConfirmationTemplate))
)

// Config holds SMTP relay settings.
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	SenderName string
	From       string
}

// Sender delivers templated messages through an SMTP relay.
type Sender struct {
	cfg  Config
	addr string
	auth smtp.Auth
}

// NewSender creates a Sender for the configured relay.
func NewSender(cfg Config) *Sender {
	return &Sender{
		cfg:  cfg,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}
}

// SendResetCode mails a one-time password-reset code.
func (s *Sender) SendResetCode(_ context.Context, to, code string) error {
	var buf bytes.Buffer
	err := resetTmpl.Execute(&buf, struct {
		Code         string
		SupportEmail string
	}{Code: code, SupportEmail: SupportEmail})
	if err != nil {
		return errors.Wrap(err, "render reset template")
	}

	return s.send(to, "Password Reset OTP - Crystal Loom", buf.Bytes())
}

// confirmationItem is one rendered line of the order table.
type confirmationItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
	Subtotal decimal.Decimal
}

// SendOrderConfirmation mails an order confirmation filled from c.
func (s *Sender) SendOrderConfirmation(_ context.Context, c order.Confirmation) error {
	items := make([]confirmationItem, len(c.Items))
	for i, line := range c.Items {
		items[i] = confirmationItem{
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Subtotal: line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		}
	}

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
		Name:         c.Name,
		OrderID:      c.OrderID.String(),
		OrderDate:    c.Date.Format("02/01/2006"),
		Address:      c.Shipping.Address,
		City:         c.Shipping.City,
		State:        c.Shipping.State,
		Pincode:      c.Shipping.Pincode,
		Phone:        c.Shipping.Phone,
		Total:        c.Total,
		Items:        items,
		SupportEmail: SupportEmail,
	})
	if err != nil {
		return errors.Wrap(err, "render confirmation template")
	}

	return s.send(c.To, c.Subject, buf.Bytes())
}

func (s *Sender) send(to, subject string, html []byte) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", s.cfg.SenderName, s.cfg.From)
	e.To = []string{to}
	e.Subject = subject
	e.HTML = html

	if err := e.Send(s.addr, s.auth); err != nil {
		return errors.Wrapf(err, "send mail to %s", to)
	}
	return nil
}
