package payment

import (
	"context"
	"fmt"
	"math"
	"strings"

	"halo/models"
	"halo/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

const chargeDescription = "Payment for medical services"

// Charger performs a single card charge.
type Charger interface {
	// Charge creates a customer for the payer and charges amount (major units).
	Charge(ctx context.Context, amount float64, token models.PaymentToken) (*models.ChargeResult, error)
}

// StripeCharger implements Charger with Stripe customers and payment intents.
type StripeCharger struct {
	sc       *client.API
	currency string
}

func NewStripeCharger(apiKey, currency string) *StripeCharger {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeCharger{sc: sc, currency: strings.ToLower(currency)}
}

// ToMinorUnits converts a major-unit amount to cents.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// IdempotencyKey derives the Stripe idempotency key for a charge. A retried
// request with the same payer, payment method and amount maps to the same key,
// so Stripe replays the first result instead of charging twice.
func IdempotencyKey(kind string, token models.PaymentToken, amount int64, currency string) string {
	return kind + "-" + utils.HashToken(fmt.Sprintf("%s|%s|%d|%s",
		strings.ToLower(token.Email), token.ID, amount, strings.ToLower(currency)))
}

func shippingFor(card models.CardDetails) *stripe.ShippingDetailsParams {
	if card.Name == "" && card.AddressLine1 == "" {
		return nil
	}
	return &stripe.ShippingDetailsParams{
		Name: stripe.String(card.Name),
		Address: &stripe.AddressParams{
			Line1:      stripe.String(card.AddressLine1),
			Line2:      stripe.String(card.AddressLine2),
			City:       stripe.String(card.AddressCity),
			Country:    stripe.String(card.AddressCountry),
			PostalCode: stripe.String(card.AddressZip),
		},
	}
}

func (c *StripeCharger) Charge(ctx context.Context, amount float64, token models.PaymentToken) (*models.ChargeResult, error) {
	logger := utils.GetLogger()

	customerParams := &stripe.CustomerParams{
		Email:         stripe.String(token.Email),
		PaymentMethod: stripe.String(token.ID),
	}
	customerParams.Context = ctx
	customerParams.SetIdempotencyKey(IdempotencyKey("customer", token, ToMinorUnits(amount), c.currency))
	customer, err := c.sc.Customers.New(customerParams)
	if err != nil {
		logger.Error("stripe customer creation failed", zap.String("email", token.Email), zap.Error(err))
		return nil, utils.NewInvalidRequest("Failed to process payment.")
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(ToMinorUnits(amount)),
		Currency:           stripe.String(c.currency),
		Customer:           stripe.String(customer.ID),
		PaymentMethod:      stripe.String(token.ID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
		ReceiptEmail:       stripe.String(token.Email),
		Description:        stripe.String(chargeDescription),
		Shipping:           shippingFor(token.Card),
	}
	piParams.Context = ctx
	piParams.SetIdempotencyKey(IdempotencyKey("charge", token, ToMinorUnits(amount), c.currency))

	pi, err := c.sc.PaymentIntents.New(piParams)
	if err != nil {
		logger.Error("stripe charge failed", zap.String("customer", customer.ID), zap.Error(err))
		return nil, utils.NewInvalidRequest("Failed to process payment.")
	}

	logger.Info("charge created",
		zap.String("paymentIntent", pi.ID),
		zap.String("customer", customer.ID),
		zap.Int64("amount", pi.Amount))
	return &models.ChargeResult{
		ID:         pi.ID,
		CustomerID: customer.ID,
		Amount:     pi.Amount,
		Currency:   string(pi.Currency),
		Status:     string(pi.Status),
	}, nil
}
