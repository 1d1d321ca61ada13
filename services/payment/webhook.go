package payment

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// EventKind classifies the webhook events the service acts on.
type EventKind string

const (
	EventPaymentSucceeded EventKind = "payment_succeeded"
	EventPaymentFailed    EventKind = "payment_failed"
	EventUnknown          EventKind = "unknown"
)

// Event is a decoded webhook notification.
type Event struct {
	Kind            EventKind
	Type            string
	PaymentIntentID string
}

// ParseWebhook verifies and decodes a webhook payload. Signature
// verification runs only when a webhook secret is configured; without one
// the payload is decoded as-is, which is acceptable in development only.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (Event, error) {
	var stripeEvent stripe.Event

	if g.webhookSecret != "" {
		verified, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
		if err != nil {
			g.logger.Warn("webhook signature rejected", zap.Error(err))
			return Event{}, ErrBadSignature
		}
		stripeEvent = verified
	} else {
		if err := json.Unmarshal(payload, &stripeEvent); err != nil {
			return Event{}, fmt.Errorf("decode webhook payload: %w", err)
		}
	}

	ev := Event{Type: string(stripeEvent.Type)}

	var object struct {
		ID string `json:"id"`
	}
	if len(stripeEvent.Data.Raw) > 0 {
		if err := json.Unmarshal(stripeEvent.Data.Raw, &object); err != nil {
			return Event{}, fmt.Errorf("decode webhook object: %w", err)
		}
	}
	ev.PaymentIntentID = object.ID

	switch stripeEvent.Type {
	case "payment_intent.succeeded":
		ev.Kind = EventPaymentSucceeded
		g.logger.Info("payment succeeded", zap.String("payment_intent", ev.PaymentIntentID))
	case "payment_intent.payment_failed":
		ev.Kind = EventPaymentFailed
		g.logger.Warn("payment failed", zap.String("payment_intent", ev.PaymentIntentID))
	default:
		ev.Kind = EventUnknown
		g.logger.Info("unhandled webhook event", zap.String("type", ev.Type))
	}

	return ev, nil
}
