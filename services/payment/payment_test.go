package payment

import (
	"testing"

	"halo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(5000), ToMinorUnits(50))
	assert.Equal(t, int64(1), ToMinorUnits(0.005))
}

func TestShippingFor(t *testing.T) {
	assert.Nil(t, shippingFor(models.CardDetails{}))

	s := shippingFor(models.CardDetails{Name: "Alice", AddressLine1: "1 Main St", AddressCity: "Nairobi", AddressZip: "00100"})
	require.NotNil(t, s)
	assert.Equal(t, "Alice", *s.Name)
	assert.Equal(t, "Nairobi", *s.Address.City)
	assert.Equal(t, "00100", *s.Address.PostalCode)
}

func TestNewStripeCharger_DefaultCurrency(t *testing.T) {
	c := NewStripeCharger("sk_test_x", "")
	assert.Equal(t, "usd", c.currency)
	assert.Equal(t, "eur", NewStripeCharger("sk_test_x", "EUR").currency)
}

func TestIdempotencyKeyIsStablePerRequest(t *testing.T) {
	token := models.PaymentToken{ID: "pm_card_visa", Email: "Alice@Example.com"}

	key := IdempotencyKey("charge", token, 4250, "usd")
	assert.Equal(t, key, IdempotencyKey("charge", token, 4250, "USD"))
	assert.Equal(t, key, IdempotencyKey("charge", models.PaymentToken{ID: "pm_card_visa", Email: "alice@example.com"}, 4250, "usd"))
	assert.LessOrEqual(t, len(key), 255)

	assert.NotEqual(t, key, IdempotencyKey("charge", token, 4251, "usd"))
	assert.NotEqual(t, key, IdempotencyKey("charge", models.PaymentToken{ID: "pm_other", Email: token.Email}, 4250, "usd"))
	assert.NotEqual(t, key, IdempotencyKey("customer", token, 4250, "usd"))
}
