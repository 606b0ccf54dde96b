package domain

import "github.com/shopspring/decimal"

// ShippingQuote — результат расчёта доставки: перевозчик, стоимость и
// ожидаемый срок в днях.
type ShippingQuote struct {
	Carrier       string
	Cost          decimal.Decimal
	EstimatedDays int
}
