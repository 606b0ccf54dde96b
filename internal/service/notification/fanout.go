package notification

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// Fanout рассылает уведомления по всем каналам. Отказ одного канала не
// мешает остальным; собранные ошибки возвращаются одним значением.
type Fanout struct {
	notifiers []domain.Notifier
	logger    *log.Entry
}

// NewFanout объединяет несколько нотификаторов в один.
func NewFanout(logger *log.Entry, notifiers ...domain.Notifier) *Fanout {
	if logger == nil {
		logger = log.New().WithField("component", "notifier")
	}
	return &Fanout{notifiers: notifiers, logger: logger.WithField("channel", "fanout")}
}

// SendOrderConfirmation рассылает подтверждение по всем каналам.
func (f *Fanout) SendOrderConfirmation(order domain.Order) error {
	return f.each(order, domain.Notifier.SendOrderConfirmation)
}

// SendShippingNotification рассылает уведомление об отгрузке по всем каналам.
func (f *Fanout) SendShippingNotification(order domain.Order) error {
	return f.each(order, domain.Notifier.SendShippingNotification)
}

func (f *Fanout) each(order domain.Order, send func(domain.Notifier, domain.Order) error) error {
	var errs []error
	for _, n := range f.notifiers {
		if err := send(n, order); err != nil {
			f.logger.WithError(err).WithField("order_id", order.ID).Warn("notification channel failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ domain.Notifier = (*Fanout)(nil)
