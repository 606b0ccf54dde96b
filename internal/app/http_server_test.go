package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/pricing"
)

func newTestRouter(t *testing.T) (http.Handler, *Dependencies) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.TaxRate = pricing.DefaultTaxRate
	cfg.VIPCustomers = []string{"vip-1"}
	cfg.InitialStock = map[string]int{
		"laptop": 10,
		"mouse":  100,
	}

	deps, err := NewDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("failed to build dependencies: %v", err)
	}
	t.Cleanup(deps.Close)

	return NewRouter(deps), deps
}

func createOrderBody() []byte {
	body := map[string]interface{}{
		"customer_id":      "customer-1",
		"customer_name":    "Alice",
		"customer_email":   "alice@example.com",
		"shipping_address": "1 Main St",
		"order_type":       "standard",
		"payment_method":   "credit_card",
		"items": []map[string]interface{}{
			{"product_id": "laptop", "product_name": "Laptop", "quantity": 1, "unit_price": "1299.99"},
			{"product_id": "mouse", "product_name": "Mouse", "quantity": 3, "unit_price": "49.99"},
		},
	}
	data, _ := json.Marshal(body)
	return data
}

func TestCreateOrderFulfillsAndReturnsOrder(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(createOrderBody()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp orderResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != string(domain.OrderStatusShipped) {
		t.Errorf("expected shipped status, got %s", resp.Status)
	}
	if resp.Subtotal != "1449.96" {
		t.Errorf("expected subtotal 1449.96, got %s", resp.Subtotal)
	}
	if resp.TaxAmount != "289.99" {
		t.Errorf("expected tax 289.99, got %s", resp.TaxAmount)
	}
	if resp.Total != "1749.94" {
		t.Errorf("expected total 1749.94, got %s", resp.Total)
	}
	if resp.Carrier != "USPS" {
		t.Errorf("expected USPS, got %s", resp.Carrier)
	}
	if !strings.HasPrefix(resp.TrackingNumber, "USPS-") {
		t.Errorf("unexpected tracking number %s", resp.TrackingNumber)
	}
	if resp.PaymentMethod != "credit_card" || resp.TransactionID == "" {
		t.Errorf("payment not reflected: %s %s", resp.PaymentMethod, resp.TransactionID)
	}
	if resp.Capabilities.Cancellable {
		t.Error("shipped order must not be cancellable")
	}
	if !resp.Capabilities.Trackable {
		t.Error("shipped order must be trackable")
	}
}

func TestCreateOrderRejectsInvalidPayload(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name  string
		patch func(body map[string]interface{})
	}{
		{"missing email", func(b map[string]interface{}) { delete(b, "customer_email") }},
		{"bad email", func(b map[string]interface{}) { b["customer_email"] = "not-an-email" }},
		{"unknown order type", func(b map[string]interface{}) { b["order_type"] = "teleport" }},
		{"unknown payment method", func(b map[string]interface{}) { b["payment_method"] = "cheque" }},
		{"empty items", func(b map[string]interface{}) { b["items"] = []map[string]interface{}{} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var body map[string]interface{}
			if err := json.Unmarshal(createOrderBody(), &body); err != nil {
				t.Fatal(err)
			}
			tc.patch(body)
			data, _ := json.Marshal(body)

			req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(data))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateOrderUnfulfillableReturns422(t *testing.T) {
	router, _ := newTestRouter(t)

	var body map[string]interface{}
	if err := json.Unmarshal(createOrderBody(), &body); err != nil {
		t.Fatal(err)
	}
	body["items"] = []map[string]interface{}{
		{"product_id": "laptop", "product_name": "Laptop", "quantity": 500, "unit_price": "1299.99"},
	}
	data, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(data))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on inventory shortfall, got %d", w.Code)
	}
}

func TestGetOrder(t *testing.T) {
	router, deps := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(createOrderBody()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	var created orderResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/orders/"+created.ID, nil)
	getW := httptest.NewRecorder()
	router.ServeHTTP(getW, getReq)

	if getW.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getW.Code)
	}

	var fetched orderResponse
	if err := json.NewDecoder(getW.Body).Decode(&fetched); err != nil {
		t.Fatal(err)
	}
	if fetched.ID != created.ID || fetched.Total != created.Total {
		t.Fatalf("fetched order differs: %+v vs %+v", fetched, created)
	}

	// Хранилище доступно и напрямую.
	if _, err := deps.Repo.GetByID(created.ID); err != nil {
		t.Fatalf("order missing from repository: %v", err)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/orders/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCancelOrder(t *testing.T) {
	router, deps := newTestRouter(t)

	// Заказ, который ещё не ушёл в отгрузку, отменить можно.
	now := time.Now().UTC()
	order := domain.Order{
		ID:              "order-cancel",
		CustomerID:      "customer-1",
		CustomerEmail:   "alice@example.com",
		ShippingAddress: "1 Main St",
		Type:            domain.OrderTypeStandard,
		Status:          domain.OrderStatusCreated,
		Items: []domain.OrderItem{
			{ProductID: "mouse", ProductName: "Mouse", Quantity: 1, UnitPrice: decimal.RequireFromString("49.99")},
		},
		OrderDate: now,
		UpdatedAt: now,
	}
	if err := deps.Repo.Save(order); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/orders/order-cancel/cancel",
		strings.NewReader(`{"reason":"customer request"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp orderResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != string(domain.OrderStatusCancelled) {
		t.Fatalf("expected cancelled, got %s", resp.Status)
	}
}

func TestCancelShippedOrderConflicts(t *testing.T) {
	router, _ := newTestRouter(t)

	// Через конвейер заказ уходит сразу в shipped.
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(createOrderBody()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}
	var created orderResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	cancelReq := httptest.NewRequest(http.MethodPost, "/orders/"+created.ID+"/cancel", nil)
	cancelW := httptest.NewRecorder()
	router.ServeHTTP(cancelW, cancelReq)

	if cancelW.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", cancelW.Code)
	}
}

func TestDeliverOrder(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(createOrderBody()))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}
	var created orderResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	deliverReq := httptest.NewRequest(http.MethodPost, "/orders/"+created.ID+"/deliver", nil)
	deliverW := httptest.NewRecorder()
	router.ServeHTTP(deliverW, deliverReq)

	if deliverW.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", deliverW.Code, deliverW.Body.String())
	}

	var delivered orderResponse
	if err := json.NewDecoder(deliverW.Body).Decode(&delivered); err != nil {
		t.Fatal(err)
	}
	if delivered.Status != string(domain.OrderStatusDelivered) {
		t.Fatalf("expected delivered, got %s", delivered.Status)
	}

	// Повторная доставка отклоняется.
	againW := httptest.NewRecorder()
	router.ServeHTTP(againW, httptest.NewRequest(http.MethodPost, "/orders/"+created.ID+"/deliver", nil))
	if againW.Code != http.StatusConflict {
		t.Fatalf("expected 409 on repeated delivery, got %d", againW.Code)
	}
}
