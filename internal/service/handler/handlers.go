package handler

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// StandardHandler — базовая подготовка: обычная упаковка.
type StandardHandler struct {
	logger *log.Entry
}

// NewStandardHandler создаёт обработчик стандартных заказов.
func NewStandardHandler(logger *log.Entry) *StandardHandler {
	if logger == nil {
		logger = log.New().WithField("component", "order-handler")
	}
	return &StandardHandler{logger: logger.WithField("handler", "standard")}
}

func (h *StandardHandler) Type() domain.OrderType { return domain.OrderTypeStandard }

func (h *StandardHandler) PrepareForShipment(order *domain.Order) error {
	h.logger.WithField("order_id", order.ID).Info("standard packaging applied")
	return order.TransitionTo(domain.OrderStatusReadyToShip)
}

// ExpressHandler — приоритетная упаковка и пометка high priority.
type ExpressHandler struct {
	logger *log.Entry
}

// NewExpressHandler создаёт обработчик экспресс-заказов.
func NewExpressHandler(logger *log.Entry) *ExpressHandler {
	if logger == nil {
		logger = log.New().WithField("component", "order-handler")
	}
	return &ExpressHandler{logger: logger.WithField("handler", "express")}
}

func (h *ExpressHandler) Type() domain.OrderType { return domain.OrderTypeExpress }

func (h *ExpressHandler) PrepareForShipment(order *domain.Order) error {
	entry := h.logger.WithField("order_id", order.ID)
	entry.Info("priority packaging applied")
	entry.Info("order marked as high priority")
	return order.TransitionTo(domain.OrderStatusReadyToShip)
}

// InternationalHandler — таможенные документы и экспортный контроль.
type InternationalHandler struct {
	logger *log.Entry
}

// NewInternationalHandler создаёт обработчик международных заказов.
func NewInternationalHandler(logger *log.Entry) *InternationalHandler {
	if logger == nil {
		logger = log.New().WithField("component", "order-handler")
	}
	return &InternationalHandler{logger: logger.WithField("handler", "international")}
}

func (h *InternationalHandler) Type() domain.OrderType { return domain.OrderTypeInternational }

func (h *InternationalHandler) PrepareForShipment(order *domain.Order) error {
	entry := h.logger.WithField("order_id", order.ID)
	entry.Info("customs documentation prepared")
	entry.Info("export compliance check completed")
	entry.Info("international packaging applied")
	return order.TransitionTo(domain.OrderStatusReadyToShip)
}

// NewDefaultRegistry возвращает реестр со всеми тремя обработчиками.
func NewDefaultRegistry(logger *log.Entry) *Registry {
	return NewRegistry(
		NewStandardHandler(logger),
		NewExpressHandler(logger),
		NewInternationalHandler(logger),
	)
}

var (
	_ OrderHandler = (*StandardHandler)(nil)
	_ OrderHandler = (*ExpressHandler)(nil)
	_ OrderHandler = (*InternationalHandler)(nil)
)
