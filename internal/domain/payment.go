package domain

import "github.com/shopspring/decimal"

// PaymentRecord описывает результат списания средств по заказу.
type PaymentRecord struct {
	// Method — имя платёжного метода (credit_card, paypal, ...).
	Method string
	// TransactionID — идентификатор транзакции, сгенерированный процессором.
	TransactionID string
	// Amount — списанная сумма.
	Amount decimal.Decimal
	// Processed подтверждает, что списание прошло.
	Processed bool
}

// Validate проверяет корректность полей платёжной записи.
func (p *PaymentRecord) Validate() []error {
	var errs []error

	if p.Method == "" {
		errs = append(errs, ErrPaymentMethodRequired)
	}
	if p.TransactionID == "" {
		errs = append(errs, ErrTransactionIDRequired)
	}
	if p.Amount.IsNegative() {
		errs = append(errs, ErrPaymentAmountNegative)
	}

	return errs
}
