package notification

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/messaging/kafka"
)

type stubPublisher struct {
	err    error
	topics []string
	keys   []string
	events []interface{}
}

func (s *stubPublisher) PublishEvent(topic string, key string, event interface{}) error {
	s.topics = append(s.topics, topic)
	s.keys = append(s.keys, key)
	s.events = append(s.events, event)
	return s.err
}

func sampleOrder() domain.Order {
	return domain.Order{
		ID:             "order-1",
		CustomerID:     "customer-1",
		CustomerEmail:  "alice@example.com",
		Status:         domain.OrderStatusShipped,
		Total:          decimal.RequireFromString("42.00"),
		TrackingNumber: "USPS-ABCD1234",
	}
}

func TestEmailAndSMSNotifiersAlwaysSucceed(t *testing.T) {
	order := sampleOrder()

	for _, n := range []domain.Notifier{NewEmailNotifier(nil), NewSMSNotifier(nil)} {
		if err := n.SendOrderConfirmation(order); err != nil {
			t.Fatalf("confirmation: %v", err)
		}
		if err := n.SendShippingNotification(order); err != nil {
			t.Fatalf("shipping: %v", err)
		}
	}
}

func TestKafkaNotifierPublishesOrderEvents(t *testing.T) {
	pub := &stubPublisher{}
	n := NewKafkaNotifier(pub, nil)
	order := sampleOrder()

	if err := n.SendOrderConfirmation(order); err != nil {
		t.Fatalf("confirmation: %v", err)
	}
	if err := n.SendShippingNotification(order); err != nil {
		t.Fatalf("shipping: %v", err)
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.events))
	}
	for _, topic := range pub.topics {
		if topic != kafka.TopicOrderEvents {
			t.Fatalf("unexpected topic %s", topic)
		}
	}
	for _, key := range pub.keys {
		if key != "order-1" {
			t.Fatalf("unexpected key %s", key)
		}
	}

	first, ok := pub.events[0].(*kafka.OrderEvent)
	if !ok {
		t.Fatalf("unexpected event type %T", pub.events[0])
	}
	if first.EventType != kafka.EventTypeOrderConfirmed {
		t.Fatalf("expected order.confirmed, got %s", first.EventType)
	}

	second := pub.events[1].(*kafka.OrderEvent)
	if second.EventType != kafka.EventTypeOrderShipped {
		t.Fatalf("expected order.shipped, got %s", second.EventType)
	}
}

func TestKafkaNotifierPropagatesPublishError(t *testing.T) {
	wantErr := errors.New("broker down")
	n := NewKafkaNotifier(&stubPublisher{err: wantErr}, nil)

	if err := n.SendOrderConfirmation(sampleOrder()); !errors.Is(err, wantErr) {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestFanoutContinuesAfterChannelFailure(t *testing.T) {
	failing := NewMockNotifier()
	failing.ConfirmationErr = errors.New("smtp timeout")
	healthy := NewMockNotifier()

	fanout := NewFanout(nil, failing, healthy)

	err := fanout.SendOrderConfirmation(sampleOrder())
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if healthy.ConfirmationCalls != 1 {
		t.Fatalf("healthy channel must still be called, got %d calls", healthy.ConfirmationCalls)
	}

	if err := fanout.SendShippingNotification(sampleOrder()); err != nil {
		t.Fatalf("shipping fanout: %v", err)
	}
	if healthy.ShippingCalls != 1 || failing.ShippingCalls != 1 {
		t.Fatal("both channels must receive the shipping notification")
	}
}
