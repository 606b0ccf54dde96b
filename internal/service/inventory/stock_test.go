package inventory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

func items(productID string, qty int) []domain.OrderItem {
	return []domain.OrderItem{
		{ProductID: productID, ProductName: "Widget", Quantity: qty, UnitPrice: decimal.NewFromInt(1)},
	}
}

func TestCheckAvailability(t *testing.T) {
	svc := NewStockService(map[string]int{"prod-1": 10}, nil)

	ok, err := svc.CheckAvailability(items("prod-1", 10))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok {
		t.Fatal("expected availability for exact stock")
	}

	ok, err = svc.CheckAvailability(items("prod-1", 11))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ok {
		t.Fatal("expected shortfall for quantity above stock")
	}

	ok, _ = svc.CheckAvailability(items("prod-unknown", 1))
	if ok {
		t.Fatal("expected shortfall for unknown product")
	}
}

func TestReserveStockDecrements(t *testing.T) {
	svc := NewStockService(map[string]int{"prod-1": 10}, nil)

	if err := svc.ReserveStock(items("prod-1", 4)); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if got := svc.Available("prod-1"); got != 6 {
		t.Fatalf("expected 6 remaining, got %d", got)
	}
}

func TestReserveStockShortfall(t *testing.T) {
	svc := NewStockService(map[string]int{"prod-1": 3}, nil)

	err := svc.ReserveStock(items("prod-1", 5))
	if !errors.Is(err, domain.ErrInventoryShortfall) {
		t.Fatalf("expected ErrInventoryShortfall, got %v", err)
	}
	if got := svc.Available("prod-1"); got != 3 {
		t.Fatalf("failed reserve must not decrement stock, got %d", got)
	}
}

func TestReserveStockAllOrNothing(t *testing.T) {
	svc := NewStockService(map[string]int{"prod-1": 10, "prod-2": 1}, nil)

	order := []domain.OrderItem{
		{ProductID: "prod-1", Quantity: 2, UnitPrice: decimal.NewFromInt(1)},
		{ProductID: "prod-2", Quantity: 5, UnitPrice: decimal.NewFromInt(1)},
	}

	if err := svc.ReserveStock(order); !errors.Is(err, domain.ErrInventoryShortfall) {
		t.Fatalf("expected ErrInventoryShortfall, got %v", err)
	}
	if got := svc.Available("prod-1"); got != 10 {
		t.Fatalf("partial reserve leaked: prod-1 has %d", got)
	}
}
