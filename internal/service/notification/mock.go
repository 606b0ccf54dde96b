package notification

import "github.com/vladislavdragonenkov/fulfillment/internal/domain"

// MockNotifier — конфигурируемая заглушка Notifier для тестов.
type MockNotifier struct {
	ConfirmationErr error
	ShippingErr     error

	ConfirmationCalls int
	ShippingCalls     int
	LastOrder         domain.Order
}

// NewMockNotifier возвращает mock с успешным сценарием по умолчанию.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// SendOrderConfirmation возвращает настроенную ошибку и считает вызовы.
func (m *MockNotifier) SendOrderConfirmation(order domain.Order) error {
	m.ConfirmationCalls++
	m.LastOrder = order
	return m.ConfirmationErr
}

// SendShippingNotification возвращает настроенную ошибку и считает вызовы.
func (m *MockNotifier) SendShippingNotification(order domain.Order) error {
	m.ShippingCalls++
	m.LastOrder = order
	return m.ShippingErr
}

var _ domain.Notifier = (*MockNotifier)(nil)
