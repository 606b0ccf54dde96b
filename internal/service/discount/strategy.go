package discount

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// Strategy вычисляет сумму скидки по заказу. Контракт: результат
// неотрицателен и не превышает subtotal. Новые стратегии добавляются
// регистрацией, оркестратор при этом не меняется.
type Strategy interface {
	// Name — ключ стратегии в реестре.
	Name() string
	// Calculate возвращает сумму скидки для заказа.
	Calculate(order domain.Order) decimal.Decimal
}

// Registry хранит стратегии скидок по имени. Незарегистрированное имя —
// конфигурационная ошибка, fallback не выполняется.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry создаёт реестр с переданными стратегиями.
func NewRegistry(strategies ...Strategy) *Registry {
	r := &Registry{strategies: make(map[string]Strategy, len(strategies))}
	for _, s := range strategies {
		r.strategies[s.Name()] = s
	}
	return r
}

// Register добавляет стратегию в реестр, перезаписывая одноимённую.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Get возвращает стратегию по имени или ErrUnknownDiscountStrategy.
func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDiscountStrategy, name)
	}
	return s, nil
}
