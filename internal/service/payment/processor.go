package payment

import (
	"fmt"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

// Processor списывает средства по заказу и возвращает платёжную запись.
// В текущей модели списание всегда успешно — отказ провайдера не
// моделируется, это известное упрощение, а не контракт на будущее.
type Processor interface {
	// Name — ключ процессора в реестре.
	Name() string
	// Charge выполняет списание на сумму order.Total.
	Charge(order domain.Order) (domain.PaymentRecord, error)
}

// Registry хранит платёжные процессоры по имени метода.
type Registry struct {
	processors map[string]Processor
}

// NewRegistry создаёт реестр с переданными процессорами.
func NewRegistry(processors ...Processor) *Registry {
	r := &Registry{processors: make(map[string]Processor, len(processors))}
	for _, p := range processors {
		r.processors[p.Name()] = p
	}
	return r
}

// Register добавляет процессор, перезаписывая одноимённый.
func (r *Registry) Register(p Processor) {
	r.processors[p.Name()] = p
}

// Get возвращает процессор по имени метода или ErrUnknownPaymentMethod.
func (r *Registry) Get(name string) (Processor, error) {
	p, ok := r.processors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPaymentMethod, name)
	}
	return p, nil
}
