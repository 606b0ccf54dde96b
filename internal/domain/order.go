package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType определяет вариант исполнения заказа. Для каждого типа
// регистрируется свой обработчик подготовки к отгрузке.
type OrderType string

const (
	// OrderTypeStandard — обычная доставка без приоритета.
	OrderTypeStandard OrderType = "standard"
	// OrderTypeExpress — приоритетная упаковка и ускоренная доставка.
	OrderTypeExpress OrderType = "express"
	// OrderTypeInternational — международная доставка с таможенным оформлением.
	OrderTypeInternational OrderType = "international"
)

// ParseOrderType преобразует строку в OrderType. Неизвестный тип —
// конфигурационная ошибка, молча подставлять значение по умолчанию нельзя.
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case OrderTypeStandard, OrderTypeExpress, OrderTypeInternational:
		return OrderType(s), nil
	default:
		return "", ErrUnknownOrderType
	}
}

// OrderStatus описывает жизненный цикл заказа в конвейере исполнения.
type OrderStatus string

const (
	// OrderStatusCreated — заказ создан, проверки ещё не выполнялись.
	OrderStatusCreated OrderStatus = "created"
	// OrderStatusValidated — валидация прошла без замечаний.
	OrderStatusValidated OrderStatus = "validated"
	// OrderStatusPaymentProcessed — платёж подтверждён процессором.
	OrderStatusPaymentProcessed OrderStatus = "payment_processed"
	// OrderStatusReadyToShip — обработчик типа завершил подготовку к отгрузке.
	OrderStatusReadyToShip OrderStatus = "ready_to_ship"
	// OrderStatusShipped — заказ передан перевозчику, трек-номер назначен.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ доставлен (внешнее событие, вне конвейера).
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён до отгрузки.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// nextStatus фиксирует единственный допустимый переход вперёд для каждого
// статуса. Переходы строго монотонны: пропускать и откатывать состояния
// нельзя, единственная боковая ветка — отмена через Cancel.
var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusCreated:          OrderStatusValidated,
	OrderStatusValidated:        OrderStatusPaymentProcessed,
	OrderStatusPaymentProcessed: OrderStatusReadyToShip,
	OrderStatusReadyToShip:      OrderStatusShipped,
	OrderStatusShipped:          OrderStatusDelivered,
}

// OrderItem представляет одну позицию заказа. Позиции неизменяемы после
// успешной валидации — дальше мутируют только статус и расчётные поля заказа.
type OrderItem struct {
	// ProductID — внешний идентификатор товара.
	ProductID string
	// ProductName используется в сообщениях валидации и уведомлениях.
	ProductName string
	// Quantity — количество единиц, строго положительное.
	Quantity int
	// UnitPrice — цена за единицу, строго положительная.
	UnitPrice decimal.Decimal
}

// Total возвращает стоимость позиции: количество × цена за единицу.
func (i OrderItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order агрегирует состояние заказа, его позиции и расчётные суммы.
// Денежные поля хранятся как decimal.Decimal; арифметика точная, округление
// до двух знаков выполняется только при отображении.
type Order struct {
	ID              string
	CustomerID      string
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	Items           []OrderItem
	Type            OrderType
	Status          OrderStatus

	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingCost   decimal.Decimal
	Total          decimal.Decimal

	Carrier        string
	TrackingNumber string
	Payment        *PaymentRecord

	OrderDate   time.Time
	ShippedDate *time.Time
	UpdatedAt   time.Time
}

// TotalQuantity суммирует количество единиц по всем позициям заказа.
func (o *Order) TotalQuantity() int {
	var total int
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// TransitionTo переводит заказ в следующий статус. Допустим только переход,
// зафиксированный в nextStatus; всё остальное — ErrInvalidStatusTransition.
func (o *Order) TransitionTo(next OrderStatus) error {
	if nextStatus[o.Status] != next {
		return ErrInvalidStatusTransition
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Cancel отменяет заказ. Отмена запрещена после отгрузки и доставки,
// повторная отмена тоже отклоняется.
func (o *Order) Cancel() error {
	if !o.Capabilities().Cancellable {
		return ErrOrderNotCancellable
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkShipped назначает трек-номер, проставляет дату отгрузки и переводит
// заказ в статус shipped.
func (o *Order) MarkShipped(trackingNumber string, shippedAt time.Time) error {
	if err := o.TransitionTo(OrderStatusShipped); err != nil {
		return err
	}
	o.TrackingNumber = trackingNumber
	o.ShippedDate = &shippedAt
	return nil
}

// MarkDelivered фиксирует доставку. Событие приходит извне конвейера и
// допустимо только из статуса shipped.
func (o *Order) MarkDelivered() error {
	return o.TransitionTo(OrderStatusDelivered)
}
