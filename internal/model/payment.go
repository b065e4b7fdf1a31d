package model

import (
	"errors"
	"fmt"
)

// PaymentMethod is the way a ticket is paid for.
type PaymentMethod string

const (
	PayCash     PaymentMethod = "cash"
	PayCard     PaymentMethod = "card"
	PayTransfer PaymentMethod = "transfer"
)

// ErrPayment is wrapped by payment failures so handlers can distinguish a
// rejected payment from malformed input.
var ErrPayment = errors.New("payment failed")

// ParsePaymentMethod validates a wire value and returns the typed method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PayCash, PayCard, PayTransfer:
		return PaymentMethod(s), nil
	}
	return "", invalidf("invalid payment method %q", s)
}

// Payment records a tendered amount and the chosen method.
type Payment struct {
	Method      PaymentMethod `json:"method"`
	AmountCents uint32        `json:"amount_cents"`
}

// Validate checks the payment's own invariants, independent of any ticket.
func (p Payment) Validate() error {
	if _, err := ParsePaymentMethod(string(p.Method)); err != nil {
		return err
	}
	if p.AmountCents == 0 {
		return invalidf("amount must be positive")
	}
	return nil
}

// Settle validates the payment against the price owed.  The tendered amount
// must cover the price exactly; over- and underpayment are both rejected
// since the box office quotes the final discounted price up front.
func (p Payment) Settle(priceCents uint32) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.AmountCents != priceCents {
		return fmt.Errorf("%w: amount %d does not match price %d", ErrPayment, p.AmountCents, priceCents)
	}
	return nil
}
