package domain

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Save сохраняет или перезаписывает заказ.
	Save(order Order) error
	// GetByID возвращает заказ по идентификатору или ErrOrderNotFound.
	GetByID(id string) (Order, error)
}

// InventoryService описывает взаимодействие со складом.
type InventoryService interface {
	// CheckAvailability проверяет, хватает ли стока под все позиции.
	CheckAvailability(items []OrderItem) (bool, error)
	// ReserveStock резервирует позиции. Вызывается только после успешной
	// проверки доступности; резерв не снимается при последующих сбоях.
	ReserveStock(items []OrderItem) error
}

// Notifier отправляет уведомления клиенту. Доставка fire-and-forget,
// гарантий нет.
type Notifier interface {
	SendOrderConfirmation(order Order) error
	SendShippingNotification(order Order) error
}
