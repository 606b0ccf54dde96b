package payment

import "github.com/vladislavdragonenkov/fulfillment/internal/domain"

// MockProcessor — конфигурируемая заглушка Processor для тестов.
type MockProcessor struct {
	Method     string
	Record     domain.PaymentRecord
	Err        error
	PanicValue interface{}

	ChargeCalls int
}

// NewMockProcessor возвращает mock с успешным сценарием по умолчанию.
func NewMockProcessor(method string) *MockProcessor {
	return &MockProcessor{
		Method: method,
		Record: domain.PaymentRecord{
			Method:        method,
			TransactionID: "MOCK-00000000",
			Processed:     true,
		},
	}
}

// Name возвращает имя метода.
func (m *MockProcessor) Name() string { return m.Method }

// Charge возвращает заранее настроенный результат и считает вызовы.
func (m *MockProcessor) Charge(order domain.Order) (domain.PaymentRecord, error) {
	m.ChargeCalls++
	if m.PanicValue != nil {
		panic(m.PanicValue)
	}
	if m.Err != nil {
		return domain.PaymentRecord{}, m.Err
	}
	record := m.Record
	record.Amount = order.Total
	return record, nil
}

var _ Processor = (*MockProcessor)(nil)
