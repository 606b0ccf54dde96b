package domain

// CapabilitySet — явные флаги возможностей заказа. Набор вычисляется из
// текущего статуса и платёжной записи, так что "неподдерживаемая операция"
// непредставима: вызывающий код проверяет флаг, а не тип заказа.
type CapabilitySet struct {
	// Cancellable — заказ ещё можно отменить (до отгрузки).
	Cancellable bool
	// Modifiable — адрес доставки ещё можно изменить (до оплаты).
	Modifiable bool
	// Refundable — по заказу прошёл платёж, возврат возможен.
	Refundable bool
	// Trackable — заказу назначен трек-номер.
	Trackable bool
}

// Capabilities возвращает набор возможностей для текущего состояния заказа.
func (o *Order) Capabilities() CapabilitySet {
	return CapabilitySet{
		Cancellable: o.Status != OrderStatusShipped &&
			o.Status != OrderStatusDelivered &&
			o.Status != OrderStatusCancelled,
		Modifiable: o.Status == OrderStatusCreated || o.Status == OrderStatusValidated,
		Refundable: o.Payment != nil && o.Payment.Processed &&
			o.Status != OrderStatusDelivered &&
			o.Status != OrderStatusCancelled,
		Trackable: o.TrackingNumber != "",
	}
}

// UpdateShippingAddress меняет адрес доставки, пока заказ не ушёл в оплату.
func (o *Order) UpdateShippingAddress(address string) error {
	if !o.Capabilities().Modifiable {
		return ErrOrderNotModifiable
	}
	o.ShippingAddress = address
	return nil
}
