package discount

import (
	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

const (
	// StrategyNone — скидка не применяется.
	StrategyNone = "none"
	// StrategyPercentage — фиксированный процент от subtotal.
	StrategyPercentage = "percentage"
	// StrategyBulk — 15% при суммарном количестве от 20 единиц.
	StrategyBulk = "bulk"
	// StrategyVIP — 10% для клиентов из allowlist.
	StrategyVIP = "vip"
)

// bulkThreshold — минимальное суммарное количество единиц для bulk-скидки.
const bulkThreshold = 20

var (
	bulkRate = decimal.RequireFromString("0.15")
	vipRate  = decimal.RequireFromString("0.10")
	hundred  = decimal.NewFromInt(100)
)

// itemsSubtotal считает subtotal по позициям. Скидка вычисляется до запуска
// калькулятора цен, поэтому на order.Subtotal полагаться нельзя.
func itemsSubtotal(order domain.Order) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range order.Items {
		subtotal = subtotal.Add(item.Total())
	}
	return subtotal
}

// None — стратегия без скидки.
type None struct{}

// NewNone возвращает стратегию без скидки.
func NewNone() None { return None{} }

func (None) Name() string { return StrategyNone }

func (None) Calculate(domain.Order) decimal.Decimal { return decimal.Zero }

// Percentage применяет фиксированный процент к subtotal.
type Percentage struct {
	percent decimal.Decimal
	logger  *log.Entry
}

// NewPercentage создаёт процентную скидку; percent задаётся в процентах (10 = 10%).
func NewPercentage(percent decimal.Decimal, logger *log.Entry) Percentage {
	if logger == nil {
		logger = log.New().WithField("component", "discount")
	}
	return Percentage{percent: percent, logger: logger}
}

func (Percentage) Name() string { return StrategyPercentage }

func (p Percentage) Calculate(order domain.Order) decimal.Decimal {
	amount := itemsSubtotal(order).Mul(p.percent.Div(hundred))
	p.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"percent":  p.percent.String(),
		"amount":   amount.StringFixed(2),
	}).Debug("percentage discount applied")
	return amount
}

// Bulk даёт 15% при суммарном количестве единиц не меньше порога.
// Граница включительная: ровно 20 единиц уже активирует скидку.
type Bulk struct {
	logger *log.Entry
}

// NewBulk создаёт bulk-стратегию.
func NewBulk(logger *log.Entry) Bulk {
	if logger == nil {
		logger = log.New().WithField("component", "discount")
	}
	return Bulk{logger: logger}
}

func (Bulk) Name() string { return StrategyBulk }

func (b Bulk) Calculate(order domain.Order) decimal.Decimal {
	total := order.TotalQuantity()
	if total < bulkThreshold {
		return decimal.Zero
	}
	amount := itemsSubtotal(order).Mul(bulkRate)
	b.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"items":    total,
		"amount":   amount.StringFixed(2),
	}).Debug("bulk discount applied")
	return amount
}

// VIP даёт 10% клиентам из allowlist.
type VIP struct {
	customers map[string]struct{}
	logger    *log.Entry
}

// NewVIP создаёт VIP-стратегию для переданного списка клиентов.
func NewVIP(customerIDs []string, logger *log.Entry) VIP {
	if logger == nil {
		logger = log.New().WithField("component", "discount")
	}
	set := make(map[string]struct{}, len(customerIDs))
	for _, id := range customerIDs {
		set[id] = struct{}{}
	}
	return VIP{customers: set, logger: logger}
}

func (VIP) Name() string { return StrategyVIP }

func (v VIP) Calculate(order domain.Order) decimal.Decimal {
	if _, ok := v.customers[order.CustomerID]; !ok {
		return decimal.Zero
	}
	amount := itemsSubtotal(order).Mul(vipRate)
	v.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"amount":      amount.StringFixed(2),
	}).Debug("vip discount applied")
	return amount
}

var (
	_ Strategy = None{}
	_ Strategy = Percentage{}
	_ Strategy = Bulk{}
	_ Strategy = VIP{}
)
