package domain

import "errors"

var (
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInventoryShortfall — на складе недостаточно товара под заказ.
	ErrInventoryShortfall = errors.New("insufficient inventory")
	// ErrInvalidStatusTransition — попытка пропустить состояние или откатиться назад.
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	// ErrOrderNotCancellable — отмена после отгрузки/доставки запрещена.
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
	// ErrOrderNotModifiable — заказ уже в обработке, адрес менять нельзя.
	ErrOrderNotModifiable = errors.New("order can no longer be modified")

	// Ошибки конфигурации: для ключа не зарегистрирована реализация.
	// Такие ошибки фатальны — молчаливый fallback недопустим.

	// ErrUnknownOrderType — для типа заказа нет зарегистрированного обработчика.
	ErrUnknownOrderType = errors.New("unknown order type")
	// ErrUnknownDiscountStrategy — стратегия скидки не зарегистрирована.
	ErrUnknownDiscountStrategy = errors.New("unknown discount strategy")
	// ErrUnknownShippingProvider — провайдер доставки не зарегистрирован.
	ErrUnknownShippingProvider = errors.New("unknown shipping provider")
	// ErrUnknownPaymentMethod — платёжный метод не зарегистрирован.
	ErrUnknownPaymentMethod = errors.New("unknown payment method")

	// Ошибки валидации платёжной записи.
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrTransactionIDRequired = errors.New("transaction id is required")
	ErrPaymentAmountNegative = errors.New("payment amount must be non-negative")
)

// IsConfigurationError проверяет, относится ли ошибка к классу
// конфигурационных (незарегистрированный тип/стратегия/метод).
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownOrderType) ||
		errors.Is(err, ErrUnknownDiscountStrategy) ||
		errors.Is(err, ErrUnknownShippingProvider) ||
		errors.Is(err, ErrUnknownPaymentMethod)
}
