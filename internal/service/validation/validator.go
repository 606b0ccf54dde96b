package validation

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// ValidationResult агрегирует все найденные нарушения, а не только первое.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Error возвращает нарушения одной строкой для логов.
func (r ValidationResult) Error() string {
	return strings.Join(r.Errors, ", ")
}

// OrderValidator проверяет обязательные поля заказа и ограничения позиций.
// Без побочных эффектов: заказ не мутируется.
type OrderValidator struct {
	logger *log.Entry
}

// NewOrderValidator создаёт валидатор заказов.
func NewOrderValidator(logger *log.Entry) *OrderValidator {
	if logger == nil {
		logger = log.New().WithField("component", "order-validator")
	}
	return &OrderValidator{logger: logger}
}

// Validate собирает все нарушения по заказу. Политика "collect all":
// клиент получает полный список проблем за один проход.
// Цена позиции должна быть строго положительной: нулевая цена почти всегда
// ошибка загрузки каталога выше по течению.
func (v *OrderValidator) Validate(order domain.Order) ValidationResult {
	var errs []string

	if strings.TrimSpace(order.CustomerID) == "" {
		errs = append(errs, "customer id is required")
	}
	if strings.TrimSpace(order.CustomerEmail) == "" {
		errs = append(errs, "customer email is required")
	}
	if strings.TrimSpace(order.ShippingAddress) == "" {
		errs = append(errs, "shipping address is required")
	}
	if len(order.Items) == 0 {
		errs = append(errs, "order must contain at least one item")
	}

	for _, item := range order.Items {
		if item.Quantity <= 0 {
			errs = append(errs, fmt.Sprintf("invalid quantity for %s", item.ProductName))
		}
		if !item.UnitPrice.IsPositive() {
			errs = append(errs, fmt.Sprintf("invalid price for %s", item.ProductName))
		}
	}

	result := ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}

	if !result.Valid {
		v.logger.WithFields(log.Fields{
			"order_id":   order.ID,
			"violations": len(errs),
		}).Debug("order failed validation")
	}

	return result
}
