package notification

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// SMSNotifier имитирует SMS-уведомления короткими сообщениями в лог.
type SMSNotifier struct {
	logger *log.Entry
}

// NewSMSNotifier создаёт SMS-нотификатор.
func NewSMSNotifier(logger *log.Entry) *SMSNotifier {
	if logger == nil {
		logger = log.New().WithField("component", "notifier")
	}
	return &SMSNotifier{logger: logger.WithField("channel", "sms")}
}

// SendOrderConfirmation отправляет короткое подтверждение заказа.
func (n *SMSNotifier) SendOrderConfirmation(order domain.Order) error {
	n.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"message":  fmt.Sprintf("Order %s confirmed. Total: %s", order.ID, order.Total.StringFixed(2)),
	}).Info("order confirmation sms sent")
	return nil
}

// SendShippingNotification отправляет трек-номер в SMS.
func (n *SMSNotifier) SendShippingNotification(order domain.Order) error {
	n.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"message":  fmt.Sprintf("Order %s shipped. Track: %s", order.ID, order.TrackingNumber),
	}).Info("shipping notification sms sent")
	return nil
}

var _ domain.Notifier = (*SMSNotifier)(nil)
