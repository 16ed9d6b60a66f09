package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/newsphere/content-service/internal/core/domain"
	"github.com/newsphere/content-service/internal/core/ports"
)

// StripeProvider implements ports.PaymentProvider against the Stripe API.
// Card data never passes through this service; the client completes payment
// with the returned client secret.
type StripeProvider struct {
	api *client.API
	log zerolog.Logger
}

func NewStripeProvider(secretKey string, log zerolog.Logger) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api, log: log}
}

// CreateIntent obtains a payment authorization handle for the given amount
// (smallest currency unit) and currency.
func (p *StripeProvider) CreateIntent(ctx context.Context, amount int64, currency string) (*ports.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(uuid.NewString())

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		p.log.Error().Err(err).Int64("amount", amount).Str("currency", currency).Msg("payment intent creation failed")
		return nil, fmt.Errorf("%w: create payment intent", domain.ErrUpstream)
	}

	p.log.Info().Str("intent_id", intent.ID).Int64("amount", amount).Str("currency", currency).Msg("payment intent created")
	return &ports.PaymentIntent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}
