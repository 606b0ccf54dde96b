package shipping

import (
	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

const (
	// ProviderStandard — обычная доставка USPS.
	ProviderStandard = "standard"
	// ProviderExpress — ускоренная доставка FedEx.
	ProviderExpress = "express"
	// ProviderInternational — международная доставка DHL.
	ProviderInternational = "international"
)

// fixedProvider отдаёт заранее заданную тройку перевозчик/стоимость/срок.
type fixedProvider struct {
	name   string
	quote  domain.ShippingQuote
	logger *log.Entry
}

func (p fixedProvider) Name() string { return p.name }

func (p fixedProvider) Quote(order domain.Order) domain.ShippingQuote {
	p.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"provider": p.name,
		"carrier":  p.quote.Carrier,
		"cost":     p.quote.Cost.StringFixed(2),
		"days":     p.quote.EstimatedDays,
	}).Debug("shipping quote calculated")
	return p.quote
}

func newFixedProvider(name string, quote domain.ShippingQuote, logger *log.Entry) Provider {
	if logger == nil {
		logger = log.New().WithField("component", "shipping")
	}
	return fixedProvider{name: name, quote: quote, logger: logger}
}

// NewStandard — USPS, 9.99, 5 дней.
func NewStandard(logger *log.Entry) Provider {
	return newFixedProvider(ProviderStandard, domain.ShippingQuote{
		Carrier:       "USPS",
		Cost:          decimal.RequireFromString("9.99"),
		EstimatedDays: 5,
	}, logger)
}

// NewExpress — FedEx, 24.99, 2 дня.
func NewExpress(logger *log.Entry) Provider {
	return newFixedProvider(ProviderExpress, domain.ShippingQuote{
		Carrier:       "FedEx",
		Cost:          decimal.RequireFromString("24.99"),
		EstimatedDays: 2,
	}, logger)
}

// NewInternational — DHL, 49.99, 10 дней.
func NewInternational(logger *log.Entry) Provider {
	return newFixedProvider(ProviderInternational, domain.ShippingQuote{
		Carrier:       "DHL",
		Cost:          decimal.RequireFromString("49.99"),
		EstimatedDays: 10,
	}, logger)
}

// NewDefaultRegistry возвращает реестр со всеми тремя провайдерами.
func NewDefaultRegistry(logger *log.Entry) *Registry {
	return NewRegistry(
		NewStandard(logger),
		NewExpress(logger),
		NewInternational(logger),
	)
}
