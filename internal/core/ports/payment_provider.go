package ports

import "context"

// PaymentIntent is the opaque client-usable authorization handle returned by
// the payment provider.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentProvider creates payment authorizations. The core never touches
// card data; it only obtains the handle the client completes payment with.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*PaymentIntent, error)
}
