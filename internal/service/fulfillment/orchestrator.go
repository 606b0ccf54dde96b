package fulfillment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/metrics"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/discount"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/handler"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/payment"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/pricing"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/shipping"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/validation"
)

// Orchestrator описывает интерфейс управления конвейером исполнения заказа.
type Orchestrator interface {
	Process(order *domain.Order, discountName, shippingName, paymentMethod string) bool
	Cancel(order *domain.Order, reason string) error
	Deliver(order *domain.Order) error
}

// orchestrator реализует последовательность шагов конвейера:
// валидация → склад → скидка → доставка → цены → оплата → подготовка → отгрузка.
type orchestrator struct {
	validator *validation.OrderValidator
	inventory domain.InventoryService
	discounts *discount.Registry
	shipping  *shipping.Registry
	pricing   *pricing.Calculator
	payments  *payment.Registry
	handlers  *handler.Registry
	orders    domain.OrderRepository
	notifier  domain.Notifier
	logger    *log.Entry
	metrics   *metrics.PipelineMetrics
}

// NewOrchestrator создаёт рабочий экземпляр оркестратора.
func NewOrchestrator(
	validator *validation.OrderValidator,
	inventory domain.InventoryService,
	discounts *discount.Registry,
	shippingRegistry *shipping.Registry,
	calculator *pricing.Calculator,
	payments *payment.Registry,
	handlers *handler.Registry,
	orders domain.OrderRepository,
	notifier domain.Notifier,
	logger *log.Entry,
) Orchestrator {
	o := newOrchestrator(validator, inventory, discounts, shippingRegistry, calculator, payments, handlers, orders, notifier, logger)
	o.metrics = metrics.NewPipelineMetrics()
	return o
}

// NewOrchestratorWithoutMetrics создаёт оркестратор без метрик (для тестов).
func NewOrchestratorWithoutMetrics(
	validator *validation.OrderValidator,
	inventory domain.InventoryService,
	discounts *discount.Registry,
	shippingRegistry *shipping.Registry,
	calculator *pricing.Calculator,
	payments *payment.Registry,
	handlers *handler.Registry,
	orders domain.OrderRepository,
	notifier domain.Notifier,
	logger *log.Entry,
) Orchestrator {
	return newOrchestrator(validator, inventory, discounts, shippingRegistry, calculator, payments, handlers, orders, notifier, logger)
}

func newOrchestrator(
	validator *validation.OrderValidator,
	inventory domain.InventoryService,
	discounts *discount.Registry,
	shippingRegistry *shipping.Registry,
	calculator *pricing.Calculator,
	payments *payment.Registry,
	handlers *handler.Registry,
	orders domain.OrderRepository,
	notifier domain.Notifier,
	logger *log.Entry,
) *orchestrator {
	if logger == nil {
		logger = log.New().WithField("component", "fulfillment")
	}
	return &orchestrator{
		validator: validator,
		inventory: inventory,
		discounts: discounts,
		shipping:  shippingRegistry,
		pricing:   calculator,
		payments:  payments,
		handlers:  handlers,
		orders:    orders,
		notifier:  notifier,
		logger:    logger,
	}
}

// Process прогоняет заказ через весь конвейер. Возвращает true только если
// заказ отгружен и сохранён. Ошибки и паники коллабораторов поглощаются на
// границе: логируются, учитываются в метриках, наружу уходит false.
//
// Отката нет: резерв склада, сделанный до сбоя (например, при отказе оплаты),
// не снимается.
func (o *orchestrator) Process(order *domain.Order, discountName, shippingName, paymentMethod string) (ok bool) {
	start := time.Now()
	logger := o.logger.WithField("order_id", order.ID)

	if o.metrics != nil {
		o.metrics.RecordPipelineStarted()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("pipeline panicked")
			ok = false
		}
		if o.metrics != nil {
			if ok {
				o.metrics.RecordPipelineCompleted()
			} else {
				o.metrics.RecordPipelineFailed()
			}
			o.metrics.RecordPipelineDuration(time.Since(start))
		}
	}()

	// Все lookup'ы выполняются до первого побочного эффекта: ошибка
	// конфигурации обрывает конвейер, не тронув ни склад, ни платежи.
	strategy, err := o.discounts.Get(discountName)
	if err != nil {
		logger.WithError(err).Error("discount strategy lookup failed")
		return false
	}

	var provider shipping.Provider
	if shippingName != "" {
		provider, err = o.shipping.Get(shippingName)
	} else {
		provider, err = o.shipping.ForOrderType(order.Type)
	}
	if err != nil {
		logger.WithError(err).Error("shipping provider lookup failed")
		return false
	}

	processor, err := o.payments.Get(paymentMethod)
	if err != nil {
		logger.WithError(err).Error("payment processor lookup failed")
		return false
	}

	orderHandler, err := o.handlers.Get(order.Type)
	if err != nil {
		logger.WithError(err).Error("order handler lookup failed")
		return false
	}

	// Валидация. До успешного завершения никаких побочных эффектов.
	stage := time.Now()
	result := o.validator.Validate(*order)
	o.recordStage("validation", stage)
	if !result.Valid {
		logger.WithField("violations", result.Error()).Warn("order rejected by validation")
		if o.metrics != nil {
			o.metrics.RecordValidationFailed()
		}
		return false
	}
	if err := order.TransitionTo(domain.OrderStatusValidated); err != nil {
		logger.WithError(err).Error("order is not in a processable status")
		return false
	}

	// Склад: проверка доступности, затем резерв.
	stage = time.Now()
	available, err := o.inventory.CheckAvailability(order.Items)
	if err != nil {
		o.recordStage("inventory", stage)
		logger.WithError(err).Error("inventory check failed")
		return false
	}
	if !available {
		o.recordStage("inventory", stage)
		logger.Warn("insufficient inventory")
		if o.metrics != nil {
			o.metrics.RecordInventoryShortfall()
		}
		return false
	}
	if err := o.inventory.ReserveStock(order.Items); err != nil {
		o.recordStage("inventory", stage)
		logger.WithError(err).Error("inventory reservation failed")
		if o.metrics != nil {
			o.metrics.RecordInventoryShortfall()
		}
		return false
	}
	o.recordStage("inventory", stage)

	// Скидка. Отрицательные значения и скидка больше подытога зажимаются.
	stage = time.Now()
	order.DiscountAmount = clampDiscount(strategy.Calculate(*order), *order)
	o.recordStage("discount", stage)

	// Доставка: перевозчик и стоимость попадают в расчёт цен.
	stage = time.Now()
	quote := provider.Quote(*order)
	order.Carrier = quote.Carrier
	order.ShippingCost = quote.Cost
	o.recordStage("shipping", stage)

	// Цены.
	stage = time.Now()
	o.pricing.Calculate(order)
	o.recordStage("pricing", stage)

	// Оплата. Резерв склада при отказе сознательно не снимается.
	stage = time.Now()
	record, err := processor.Charge(*order)
	o.recordStage("payment", stage)
	if err != nil {
		logger.WithError(err).WithField("method", paymentMethod).Error("payment failed")
		return false
	}
	order.Payment = &record
	if err := order.TransitionTo(domain.OrderStatusPaymentProcessed); err != nil {
		logger.WithError(err).Error("cannot mark payment processed")
		return false
	}

	// Подготовка к отгрузке обработчиком типа заказа.
	stage = time.Now()
	if err := orderHandler.PrepareForShipment(order); err != nil {
		o.recordStage("preparation", stage)
		logger.WithError(err).Error("shipment preparation failed")
		return false
	}
	o.recordStage("preparation", stage)

	// Отгрузка: трек-номер и дата.
	if err := order.MarkShipped(newTrackingNumber(order.Carrier), time.Now().UTC()); err != nil {
		logger.WithError(err).Error("cannot mark order shipped")
		return false
	}

	stage = time.Now()
	if err := o.orders.Save(*order); err != nil {
		o.recordStage("persistence", stage)
		logger.WithError(err).Error("failed to persist order")
		return false
	}
	o.recordStage("persistence", stage)

	// Уведомления fire-and-forget: сбой доставки не отменяет исполнение.
	stage = time.Now()
	if err := o.notifier.SendOrderConfirmation(*order); err != nil {
		logger.WithError(err).Warn("order confirmation notification failed")
	}
	if err := o.notifier.SendShippingNotification(*order); err != nil {
		logger.WithError(err).Warn("shipping notification failed")
	}
	o.recordStage("notification", stage)

	logger.WithFields(log.Fields{
		"total":           order.Total.StringFixed(2),
		"carrier":         order.Carrier,
		"tracking_number": order.TrackingNumber,
	}).Info("order fulfilled")
	return true
}

// Cancel отменяет заказ с учётом его текущих возможностей и сохраняет
// результат.
func (o *orchestrator) Cancel(order *domain.Order, reason string) error {
	logger := o.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"reason":   reason,
	})

	if err := order.Cancel(); err != nil {
		logger.WithError(err).Warn("cancel rejected")
		return err
	}
	if err := o.orders.Save(*order); err != nil {
		logger.WithError(err).Error("failed to persist cancelled order")
		return err
	}
	if o.metrics != nil {
		o.metrics.RecordOrderCancelled()
	}
	logger.Info("order cancelled")
	return nil
}

// Deliver фиксирует доставку по внешнему событию перевозчика.
func (o *orchestrator) Deliver(order *domain.Order) error {
	logger := o.logger.WithField("order_id", order.ID)

	if err := order.MarkDelivered(); err != nil {
		logger.WithError(err).Warn("delivery event rejected")
		return err
	}
	if err := o.orders.Save(*order); err != nil {
		logger.WithError(err).Error("failed to persist delivered order")
		return err
	}
	logger.Info("order delivered")
	return nil
}

func (o *orchestrator) recordStage(stage string, start time.Time) {
	if o.metrics != nil {
		o.metrics.RecordStageDuration(stage, time.Since(start))
	}
}

// clampDiscount не даёт стратегии увести сумму заказа в минус: скидка не
// бывает отрицательной и не превышает подытог по позициям.
func clampDiscount(amount decimal.Decimal, order domain.Order) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	subtotal := decimal.Zero
	for _, item := range order.Items {
		subtotal = subtotal.Add(item.Total())
	}
	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	return amount
}

func newTrackingNumber(carrier string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s", strings.ToUpper(carrier), suffix)
}

var _ Orchestrator = (*orchestrator)(nil)
