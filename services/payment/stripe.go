package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/paymentmethod"
	"go.uber.org/zap"

	"skiphire/utils"
)

// CreateIntentInput carries everything needed to open a payment intent.
// Amount is in minor units (pence).
type CreateIntentInput struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// IntentResult is the subset of the created intent the client needs to
// confirm the payment.
type IntentResult struct {
	ID           string `json:"payment_intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Gateway abstracts the payment provider so handlers can be tested
// without live Stripe calls.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, in CreateIntentInput) (*IntentResult, error)
	SavePaymentMethod(ctx context.Context, paymentMethodID, email string) (string, error)
	ParseWebhook(payload []byte, signature string) (Event, error)
	CheckConnection(ctx context.Context) error
}

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	webhookSecret string
	logger        *zap.Logger
}

// NewStripeGateway builds a gateway. The global stripe.Key must already be
// set from config before any call is made.
func NewStripeGateway(webhookSecret string) *StripeGateway {
	return &StripeGateway{
		webhookSecret: webhookSecret,
		logger:        utils.GetLogger().Named("stripe"),
	}
}

// CreatePaymentIntent opens an intent for the given amount. Amounts that
// are not strictly positive are rejected before any API call.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, in CreateIntentInput) (*IntentResult, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	cur := in.Currency
	if cur == "" {
		cur = "gbp"
	}

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(in.Amount),
		Currency: stripe.String(strings.ToLower(cur)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		g.logger.Error("failed to create payment intent",
			zap.Int64("amount", in.Amount), zap.Error(err))
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	g.logger.Info("payment intent created",
		zap.String("id", pi.ID), zap.Int64("amount", pi.Amount))

	return &IntentResult{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

// SavePaymentMethod attaches a payment method to the customer matching the
// email, creating the customer if none exists. Returns the customer id.
func (g *StripeGateway) SavePaymentMethod(ctx context.Context, paymentMethodID, email string) (string, error) {
	if paymentMethodID == "" {
		return "", ErrMissingPaymentMethod
	}

	custID, err := g.findOrCreateCustomer(ctx, email)
	if err != nil {
		return "", err
	}

	attachParams := &stripe.PaymentMethodAttachParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(custID),
	}
	if _, err := paymentmethod.Attach(paymentMethodID, attachParams); err != nil {
		g.logger.Error("failed to attach payment method",
			zap.String("payment_method", paymentMethodID),
			zap.String("customer", custID), zap.Error(err))
		return "", fmt.Errorf("attach payment method: %w", err)
	}

	g.logger.Info("payment method saved",
		zap.String("payment_method", paymentMethodID),
		zap.String("customer", custID))
	return custID, nil
}

func (g *StripeGateway) findOrCreateCustomer(ctx context.Context, email string) (string, error) {
	if email != "" {
		listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
		listParams.Context = ctx
		listParams.Limit = stripe.Int64(1)
		iter := customer.List(listParams)
		for iter.Next() {
			return iter.Customer().ID, nil
		}
		if err := iter.Err(); err != nil {
			return "", fmt.Errorf("list customers: %w", err)
		}
	}

	createParams := &stripe.CustomerParams{Params: stripe.Params{Context: ctx}}
	if email != "" {
		createParams.Email = stripe.String(email)
	}
	cust, err := customer.New(createParams)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	g.logger.Info("customer created", zap.String("customer", cust.ID))
	return cust.ID, nil
}

// CheckConnection verifies the API key by opening and discarding a minimal
// test intent.
func (g *StripeGateway) CheckConnection(ctx context.Context) error {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(100),
		Currency: stripe.String("gbp"),
	}
	params.AddMetadata("purpose", "connectivity_check")

	if _, err := paymentintent.New(params); err != nil {
		return fmt.Errorf("stripe connectivity check: %w", err)
	}
	return nil
}
