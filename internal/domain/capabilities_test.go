package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

func TestCapabilitiesByStatus(t *testing.T) {
	payment := &domain.PaymentRecord{
		Method:        "credit_card",
		TransactionID: "CC-12345678",
		Amount:        decimal.RequireFromString("10.00"),
		Processed:     true,
	}

	cases := []struct {
		name     string
		status   domain.OrderStatus
		payment  *domain.PaymentRecord
		tracking string
		want     domain.CapabilitySet
	}{
		{
			name:   "created",
			status: domain.OrderStatusCreated,
			want:   domain.CapabilitySet{Cancellable: true, Modifiable: true},
		},
		{
			name:   "validated",
			status: domain.OrderStatusValidated,
			want:   domain.CapabilitySet{Cancellable: true, Modifiable: true},
		},
		{
			name:    "payment processed",
			status:  domain.OrderStatusPaymentProcessed,
			payment: payment,
			want:    domain.CapabilitySet{Cancellable: true, Refundable: true},
		},
		{
			name:     "shipped",
			status:   domain.OrderStatusShipped,
			payment:  payment,
			tracking: "USPS-ABCD1234",
			want:     domain.CapabilitySet{Refundable: true, Trackable: true},
		},
		{
			name:     "delivered",
			status:   domain.OrderStatusDelivered,
			payment:  payment,
			tracking: "USPS-ABCD1234",
			want:     domain.CapabilitySet{Trackable: true},
		},
		{
			name:    "cancelled",
			status:  domain.OrderStatusCancelled,
			payment: payment,
			want:    domain.CapabilitySet{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder(tc.status)
			order.Payment = tc.payment
			order.TrackingNumber = tc.tracking

			if got := order.Capabilities(); got != tc.want {
				t.Fatalf("capabilities mismatch: got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUpdateShippingAddress(t *testing.T) {
	order := makeOrder(domain.OrderStatusValidated)
	if err := order.UpdateShippingAddress("2 Oak Ave"); err != nil {
		t.Fatalf("update address: %v", err)
	}
	if order.ShippingAddress != "2 Oak Ave" {
		t.Fatalf("address not updated: %q", order.ShippingAddress)
	}

	shipped := makeOrder(domain.OrderStatusShipped)
	if err := shipped.UpdateShippingAddress("3 Pine Rd"); !errors.Is(err, domain.ErrOrderNotModifiable) {
		t.Fatalf("expected ErrOrderNotModifiable, got %v", err)
	}
	if shipped.ShippingAddress != "1 Main St" {
		t.Fatalf("address must stay unchanged")
	}
}

func TestIsConfigurationError(t *testing.T) {
	for _, err := range []error{
		domain.ErrUnknownOrderType,
		domain.ErrUnknownDiscountStrategy,
		domain.ErrUnknownShippingProvider,
		domain.ErrUnknownPaymentMethod,
	} {
		if !domain.IsConfigurationError(err) {
			t.Fatalf("expected %v to be a configuration error", err)
		}
	}

	if domain.IsConfigurationError(domain.ErrOrderNotFound) {
		t.Fatal("ErrOrderNotFound must not be a configuration error")
	}
}
