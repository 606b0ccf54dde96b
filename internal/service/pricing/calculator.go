package pricing

import (
	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// DefaultTaxRate — ставка налога по умолчанию (20%).
var DefaultTaxRate = decimal.RequireFromString("0.20")

// Calculator вычисляет суммы заказа: subtotal, налог и итог.
// Скидка и стоимость доставки должны быть проставлены до вызова Calculate.
// Арифметика точная (decimal), промежуточные значения не округляются;
// округление до двух знаков выполняется только при отображении.
type Calculator struct {
	taxRate decimal.Decimal
	logger  *log.Entry
}

// NewCalculator создаёт калькулятор с заданной ставкой налога.
func NewCalculator(taxRate decimal.Decimal, logger *log.Entry) *Calculator {
	if logger == nil {
		logger = log.New().WithField("component", "pricing")
	}
	return &Calculator{taxRate: taxRate, logger: logger}
}

// Calculate проставляет Subtotal, TaxAmount и Total:
//
//	subtotal = Σ(qty × unitPrice)
//	tax      = subtotal × rate
//	total    = subtotal + tax + shippingCost − discountAmount
func (c *Calculator) Calculate(order *domain.Order) {
	subtotal := decimal.Zero
	for _, item := range order.Items {
		subtotal = subtotal.Add(item.Total())
	}

	order.Subtotal = subtotal
	order.TaxAmount = subtotal.Mul(c.taxRate)
	order.Total = subtotal.
		Add(order.TaxAmount).
		Add(order.ShippingCost).
		Sub(order.DiscountAmount)

	c.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"subtotal": order.Subtotal.StringFixed(2),
		"tax":      order.TaxAmount.StringFixed(2),
		"shipping": order.ShippingCost.StringFixed(2),
		"discount": order.DiscountAmount.StringFixed(2),
		"total":    order.Total.StringFixed(2),
	}).Info("order pricing calculated")
}
