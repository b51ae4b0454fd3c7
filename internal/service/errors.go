package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Skotchmaster/storefront/internal/logging"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrConfig     = errors.New("not configured")
)

// Reason returns the message of a wrapped service error without the trailing
// sentinel text.
func Reason(err error) string {
	msg := err.Error()
	for _, s := range []error{ErrValidation, ErrNotFound, ErrConfig} {
		msg = strings.TrimSuffix(msg, ": "+s.Error())
	}
	return msg
}

// EventPublisher is implemented by mykafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

const (
	TopicProducts   = "product_events"
	TopicOrders     = "order_events"
	TopicCarts      = "cart_events"
	TopicNewsletter = "newsletter_events"
)

func publish(ctx context.Context, p EventPublisher, topic, key string, event any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", topic, "key", key, "error", err)
	}
}
