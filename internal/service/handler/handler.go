package handler

import (
	"fmt"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// OrderHandler выполняет типоспецифичную подготовку заказа к отгрузке и
// переводит его в статус ready_to_ship. Все реализации взаимозаменяемы:
// ни одна не отклоняет заказ своего типа.
type OrderHandler interface {
	// Type — тип заказа, который обслуживает обработчик.
	Type() domain.OrderType
	// PrepareForShipment выполняет подготовку и переводит статус.
	PrepareForShipment(order *domain.Order) error
}

// Registry сопоставляет тип заказа обработчику. Чистый lookup без fallback:
// незарегистрированный тип — фатальная ошибка конфигурации.
type Registry struct {
	handlers map[domain.OrderType]OrderHandler
}

// NewRegistry создаёт реестр с переданными обработчиками.
func NewRegistry(handlers ...OrderHandler) *Registry {
	r := &Registry{handlers: make(map[domain.OrderType]OrderHandler, len(handlers))}
	for _, h := range handlers {
		r.handlers[h.Type()] = h
	}
	return r
}

// Register добавляет обработчик, перезаписывая обработчик того же типа.
func (r *Registry) Register(h OrderHandler) {
	r.handlers[h.Type()] = h
}

// Get возвращает обработчик для типа заказа или ErrUnknownOrderType.
func (r *Registry) Get(t domain.OrderType) (OrderHandler, error) {
	h, ok := r.handlers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownOrderType, t)
	}
	return h, nil
}
