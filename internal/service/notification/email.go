package notification

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// EmailNotifier имитирует почтовые уведомления: вместо SMTP-сессии пишет
// человекочитаемый транскрипт в лог.
type EmailNotifier struct {
	logger *log.Entry
}

// NewEmailNotifier создаёт почтовый нотификатор.
func NewEmailNotifier(logger *log.Entry) *EmailNotifier {
	if logger == nil {
		logger = log.New().WithField("component", "notifier")
	}
	return &EmailNotifier{logger: logger.WithField("channel", "email")}
}

// SendOrderConfirmation отправляет подтверждение заказа.
func (n *EmailNotifier) SendOrderConfirmation(order domain.Order) error {
	n.logger.WithFields(log.Fields{
		"to":       order.CustomerEmail,
		"subject":  "Order Confirmation - " + order.ID,
		"order_id": order.ID,
		"total":    order.Total.StringFixed(2),
	}).Info("order confirmation email sent")
	return nil
}

// SendShippingNotification отправляет уведомление об отгрузке с трек-номером.
func (n *EmailNotifier) SendShippingNotification(order domain.Order) error {
	n.logger.WithFields(log.Fields{
		"to":       order.CustomerEmail,
		"subject":  "Your order has shipped - " + order.ID,
		"order_id": order.ID,
		"tracking": order.TrackingNumber,
	}).Info("shipping notification email sent")
	return nil
}

var _ domain.Notifier = (*EmailNotifier)(nil)
