package inventory

import "github.com/vladislavdragonenkov/fulfillment/internal/domain"

// MockService — конфигурируемая заглушка InventoryService для тестов.
type MockService struct {
	Available  bool
	CheckErr   error
	ReserveErr error

	CheckCalls   int
	ReserveCalls int
}

// NewMockService возвращает mock с успешным сценарием по умолчанию.
func NewMockService() *MockService {
	return &MockService{Available: true}
}

// CheckAvailability возвращает заранее настроенный результат и считает вызовы.
func (m *MockService) CheckAvailability(items []domain.OrderItem) (bool, error) {
	m.CheckCalls++
	return m.Available, m.CheckErr
}

// ReserveStock возвращает заранее настроенную ошибку и считает вызовы.
func (m *MockService) ReserveStock(items []domain.OrderItem) error {
	m.ReserveCalls++
	return m.ReserveErr
}

var _ domain.InventoryService = (*MockService)(nil)
