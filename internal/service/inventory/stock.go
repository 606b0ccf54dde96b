package inventory

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// StockService — in-memory реализация склада для локальной разработки и
// тестов. Резерв уменьшает остаток; обратной операции нет: снятие резерва
// при сбое дальше по конвейеру сознательно не моделируется.
type StockService struct {
	mu     sync.RWMutex
	stock  map[string]int
	logger *log.Entry
}

// NewStockService создаёт склад с начальными остатками по товарам.
func NewStockService(initial map[string]int, logger *log.Entry) *StockService {
	if logger == nil {
		logger = log.New().WithField("component", "inventory")
	}
	stock := make(map[string]int, len(initial))
	for id, qty := range initial {
		stock[id] = qty
	}
	return &StockService{stock: stock, logger: logger}
}

// SetStock выставляет остаток по товару.
func (s *StockService) SetStock(productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[productID] = qty
}

// Available возвращает текущий остаток по товару.
func (s *StockService) Available(productID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stock[productID]
}

// CheckAvailability проверяет, хватает ли остатков под все позиции заказа.
func (s *StockService) CheckAvailability(items []domain.OrderItem) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range items {
		if s.stock[item.ProductID] < item.Quantity {
			s.logger.WithFields(log.Fields{
				"product_id": item.ProductID,
				"requested":  item.Quantity,
				"available":  s.stock[item.ProductID],
			}).Warn("insufficient stock")
			return false, nil
		}
	}
	return true, nil
}

// ReserveStock списывает остатки под позиции заказа. Вызывается после
// успешной проверки доступности; при нехватке возвращает
// ErrInventoryShortfall, не списывая ничего.
func (s *StockService) ReserveStock(items []domain.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		if s.stock[item.ProductID] < item.Quantity {
			return domain.ErrInventoryShortfall
		}
	}
	for _, item := range items {
		s.stock[item.ProductID] -= item.Quantity
		s.logger.WithFields(log.Fields{
			"product_id": item.ProductID,
			"reserved":   item.Quantity,
			"remaining":  s.stock[item.ProductID],
		}).Debug("stock reserved")
	}
	return nil
}

var _ domain.InventoryService = (*StockService)(nil)
