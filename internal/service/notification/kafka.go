package notification

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/messaging/kafka"
)

// eventPublisher — минимальный контракт Kafka-продюсера, нужный нотификатору.
type eventPublisher interface {
	PublishEvent(topic string, key string, event interface{}) error
}

// KafkaNotifier публикует события заказа в Kafka вместо прямой доставки
// сообщений клиенту — подписчики (почтовый шлюз, push и т.п.) разбирают
// topic самостоятельно.
type KafkaNotifier struct {
	publisher eventPublisher
	logger    *log.Entry
}

// NewKafkaNotifier создаёт нотификатор поверх Kafka-продюсера.
func NewKafkaNotifier(publisher eventPublisher, logger *log.Entry) *KafkaNotifier {
	if logger == nil {
		logger = log.New().WithField("component", "notifier")
	}
	return &KafkaNotifier{publisher: publisher, logger: logger.WithField("channel", "kafka")}
}

// SendOrderConfirmation публикует событие подтверждения заказа.
func (n *KafkaNotifier) SendOrderConfirmation(order domain.Order) error {
	event := kafka.NewOrderEvent(kafka.EventTypeOrderConfirmed, order)
	return n.publish(order.ID, event)
}

// SendShippingNotification публикует событие отгрузки.
func (n *KafkaNotifier) SendShippingNotification(order domain.Order) error {
	event := kafka.NewOrderEvent(kafka.EventTypeOrderShipped, order)
	return n.publish(order.ID, event)
}

func (n *KafkaNotifier) publish(orderID string, event *kafka.OrderEvent) error {
	if err := n.publisher.PublishEvent(kafka.TopicOrderEvents, orderID, event); err != nil {
		n.logger.WithError(err).WithFields(log.Fields{
			"order_id":   orderID,
			"event_type": event.EventType,
		}).Error("failed to publish order event")
		return err
	}
	return nil
}

var _ domain.Notifier = (*KafkaNotifier)(nil)
