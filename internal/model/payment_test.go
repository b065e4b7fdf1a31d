package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"cash", "card", "transfer"} {
		m, err := ParsePaymentMethod(s)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethod(s), m)
	}
	_, err := ParsePaymentMethod("check")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPaymentSettle(t *testing.T) {
	p := Payment{Method: PayCard, AmountCents: 1200}
	require.NoError(t, p.Settle(1200))

	// Both under- and overpayment are payment errors, not validation.
	err := Payment{Method: PayCard, AmountCents: 1100}.Settle(1200)
	assert.ErrorIs(t, err, ErrPayment)
	err = Payment{Method: PayCash, AmountCents: 1300}.Settle(1200)
	assert.ErrorIs(t, err, ErrPayment)

	err = Payment{Method: "check", AmountCents: 1200}.Settle(1200)
	assert.ErrorIs(t, err, ErrValidation)
	err = Payment{Method: PayCash, AmountCents: 0}.Settle(0)
	assert.ErrorIs(t, err, ErrValidation)
}
