package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

func validOrder() domain.Order {
	return domain.Order{
		ID:              "order-1",
		CustomerID:      "customer-1",
		CustomerEmail:   "alice@example.com",
		ShippingAddress: "1 Main St",
		Type:            domain.OrderTypeStandard,
		Status:          domain.OrderStatusCreated,
		Items: []domain.OrderItem{
			{ProductID: "prod-1", ProductName: "Widget", Quantity: 1, UnitPrice: decimal.RequireFromString("9.99")},
		},
		OrderDate: time.Now().UTC(),
	}
}

func TestValidate_Ok(t *testing.T) {
	v := NewOrderValidator(nil)
	result := v.Validate(validOrder())
	if !result.Valid {
		t.Fatalf("expected valid order, got violations: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
}

func TestValidate_EmptyItems(t *testing.T) {
	order := validOrder()
	order.Items = nil

	result := NewOrderValidator(nil).Validate(order)
	if result.Valid {
		t.Fatal("expected invalid order")
	}
	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "at least one item") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected item-required violation, got %v", result.Errors)
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	order := validOrder()
	order.CustomerID = ""
	order.CustomerEmail = "   "
	order.ShippingAddress = ""
	order.Items = []domain.OrderItem{
		{ProductID: "prod-1", ProductName: "Widget", Quantity: 0, UnitPrice: decimal.Zero},
	}

	result := NewOrderValidator(nil).Validate(order)
	if result.Valid {
		t.Fatal("expected invalid order")
	}
	// customer id + email + address + quantity + price = 5 нарушений за один проход.
	if len(result.Errors) != 5 {
		t.Fatalf("expected 5 violations, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestValidate_ItemConstraints(t *testing.T) {
	cases := []struct {
		name string
		item domain.OrderItem
		want string
	}{
		{
			name: "zero quantity",
			item: domain.OrderItem{ProductName: "Widget", Quantity: 0, UnitPrice: decimal.NewFromInt(1)},
			want: "invalid quantity for Widget",
		},
		{
			name: "negative quantity",
			item: domain.OrderItem{ProductName: "Widget", Quantity: -2, UnitPrice: decimal.NewFromInt(1)},
			want: "invalid quantity for Widget",
		},
		{
			name: "zero price",
			item: domain.OrderItem{ProductName: "Gadget", Quantity: 1, UnitPrice: decimal.Zero},
			want: "invalid price for Gadget",
		},
		{
			name: "negative price",
			item: domain.OrderItem{ProductName: "Gadget", Quantity: 1, UnitPrice: decimal.RequireFromString("-0.01")},
			want: "invalid price for Gadget",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := validOrder()
			order.Items = []domain.OrderItem{tc.item}

			result := NewOrderValidator(nil).Validate(order)
			if result.Valid {
				t.Fatal("expected invalid order")
			}
			found := false
			for _, msg := range result.Errors {
				if msg == tc.want {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected violation %q, got %v", tc.want, result.Errors)
			}
		})
	}
}

func TestValidate_NoSideEffects(t *testing.T) {
	order := validOrder()
	before := order.Status

	_ = NewOrderValidator(nil).Validate(order)

	if order.Status != before {
		t.Fatalf("validator must not mutate the order")
	}
}
