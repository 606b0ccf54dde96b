package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// EventType определяет тип события заказа.
type EventType string

const (
	// EventTypeOrderConfirmed — заказ прошёл конвейер и оплачен.
	EventTypeOrderConfirmed EventType = "order.confirmed"
	// EventTypeOrderShipped — заказ отгружен, трек-номер назначен.
	EventTypeOrderShipped EventType = "order.shipped"
	// EventTypeOrderCancelled — заказ отменён.
	EventTypeOrderCancelled EventType = "order.cancelled"
)

// TopicOrderEvents — topic для событий жизненного цикла заказов.
const TopicOrderEvents = "fulfillment.order.events"

// OrderEvent — событие жизненного цикла заказа, публикуемое в Kafka.
type OrderEvent struct {
	EventType      EventType `json:"event_type"`
	OrderID        string    `json:"order_id"`
	CustomerID     string    `json:"customer_id"`
	Status         string    `json:"status"`
	Total          string    `json:"total"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewOrderEvent собирает событие из текущего состояния заказа.
// Денежные суммы сериализуются строками с двумя знаками.
func NewOrderEvent(eventType EventType, order domain.Order) *OrderEvent {
	return &OrderEvent{
		EventType:      eventType,
		OrderID:        order.ID,
		CustomerID:     order.CustomerID,
		Status:         string(order.Status),
		Total:          order.Total.StringFixed(2),
		TrackingNumber: order.TrackingNumber,
		Timestamp:      time.Now().UTC(),
	}
}
