package payment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

const (
	// MethodCreditCard — списание с банковской карты.
	MethodCreditCard = "credit_card"
	// MethodPayPal — оплата через PayPal-редирект.
	MethodPayPal = "paypal"
	// MethodBankTransfer — банковский перевод.
	MethodBankTransfer = "bank_transfer"
	// MethodCrypto — оплата криптовалютой.
	MethodCrypto = "crypto"
)

// stubProcessor имитирует списание: генерирует идентификатор транзакции с
// префиксом метода и возвращает подтверждённую запись.
type stubProcessor struct {
	method    string
	txnPrefix string
	logger    *log.Entry
}

func (p stubProcessor) Name() string { return p.method }

func (p stubProcessor) Charge(order domain.Order) (domain.PaymentRecord, error) {
	txnID := fmt.Sprintf("%s-%s", p.txnPrefix, newTransactionSuffix())

	p.logger.WithFields(log.Fields{
		"order_id":       order.ID,
		"method":         p.method,
		"transaction_id": txnID,
		"amount":         order.Total.StringFixed(2),
	}).Info("payment processed")

	return domain.PaymentRecord{
		Method:        p.method,
		TransactionID: txnID,
		Amount:        order.Total,
		Processed:     true,
	}, nil
}

// newTransactionSuffix возвращает короткий суффикс транзакции на основе uuid.
func newTransactionSuffix() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

func newStubProcessor(method, txnPrefix string, logger *log.Entry) Processor {
	if logger == nil {
		logger = log.New().WithField("component", "payment")
	}
	return stubProcessor{method: method, txnPrefix: txnPrefix, logger: logger}
}

// NewCreditCard создаёт процессор карточных платежей (транзакции CC-).
func NewCreditCard(logger *log.Entry) Processor {
	return newStubProcessor(MethodCreditCard, "CC", logger)
}

// NewPayPal создаёт PayPal-процессор (транзакции PP-).
func NewPayPal(logger *log.Entry) Processor {
	return newStubProcessor(MethodPayPal, "PP", logger)
}

// NewBankTransfer создаёт процессор банковских переводов (транзакции BT-).
func NewBankTransfer(logger *log.Entry) Processor {
	return newStubProcessor(MethodBankTransfer, "BT", logger)
}

// NewCrypto создаёт криптовалютный процессор (транзакции XC-).
func NewCrypto(logger *log.Entry) Processor {
	return newStubProcessor(MethodCrypto, "XC", logger)
}

// NewDefaultRegistry возвращает реестр со всеми четырьмя методами оплаты.
func NewDefaultRegistry(logger *log.Entry) *Registry {
	return NewRegistry(
		NewCreditCard(logger),
		NewPayPal(logger),
		NewBankTransfer(logger),
		NewCrypto(logger),
	)
}
