package payment

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

func TestProcessorsProduceProcessedRecords(t *testing.T) {
	order := domain.Order{
		ID:    "order-1",
		Total: decimal.RequireFromString("1749.942"),
	}

	cases := []struct {
		p      Processor
		method string
		prefix string
	}{
		{p: NewCreditCard(nil), method: MethodCreditCard, prefix: "CC-"},
		{p: NewPayPal(nil), method: MethodPayPal, prefix: "PP-"},
		{p: NewBankTransfer(nil), method: MethodBankTransfer, prefix: "BT-"},
		{p: NewCrypto(nil), method: MethodCrypto, prefix: "XC-"},
	}

	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			record, err := tc.p.Charge(order)
			if err != nil {
				t.Fatalf("charge: %v", err)
			}
			if !record.Processed {
				t.Fatal("expected processed record")
			}
			if record.Method != tc.method {
				t.Fatalf("expected method %s, got %s", tc.method, record.Method)
			}
			if !strings.HasPrefix(record.TransactionID, tc.prefix) {
				t.Fatalf("expected transaction prefix %s, got %s", tc.prefix, record.TransactionID)
			}
			if !record.Amount.Equal(order.Total) {
				t.Fatalf("expected amount %s, got %s", order.Total, record.Amount)
			}
			if errs := record.Validate(); len(errs) != 0 {
				t.Fatalf("record must be valid, got %v", errs)
			}
		})
	}
}

func TestTransactionIDsAreUnique(t *testing.T) {
	p := NewCreditCard(nil)
	order := domain.Order{ID: "order-1", Total: decimal.NewFromInt(10)}

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		record, err := p.Charge(order)
		if err != nil {
			t.Fatalf("charge: %v", err)
		}
		if _, dup := seen[record.TransactionID]; dup {
			t.Fatalf("duplicate transaction id %s", record.TransactionID)
		}
		seen[record.TransactionID] = struct{}{}
	}
}

func TestRegistryLookup(t *testing.T) {
	registry := NewDefaultRegistry(nil)

	p, err := registry.Get(MethodPayPal)
	if err != nil {
		t.Fatalf("get paypal: %v", err)
	}
	if p.Name() != MethodPayPal {
		t.Fatalf("expected paypal, got %s", p.Name())
	}

	if _, err := registry.Get("cheque"); !errors.Is(err, domain.ErrUnknownPaymentMethod) {
		t.Fatalf("expected ErrUnknownPaymentMethod, got %v", err)
	}
}
