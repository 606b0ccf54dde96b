package shipping

import (
	"fmt"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// Provider возвращает расчёт доставки для заказа. В текущей модели каждый
// провайдер отдаёт фиксированную тройку перевозчик/стоимость/срок —
// расчёт по весу и направлению сознательно не моделируется.
type Provider interface {
	// Name — ключ провайдера в реестре.
	Name() string
	// Quote возвращает перевозчика, стоимость и ожидаемый срок доставки.
	Quote(order domain.Order) domain.ShippingQuote
}

// Registry хранит провайдеров доставки по имени.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry создаёт реестр с переданными провайдерами.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Register добавляет провайдера, перезаписывая одноимённого.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get возвращает провайдера по имени или ErrUnknownShippingProvider.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownShippingProvider, name)
	}
	return p, nil
}

// ForOrderType возвращает провайдера по умолчанию для типа заказа.
// Типы заказов намеренно совпадают с именами провайдеров.
func (r *Registry) ForOrderType(t domain.OrderType) (Provider, error) {
	return r.Get(string(t))
}
