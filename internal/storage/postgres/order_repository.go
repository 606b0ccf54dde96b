package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// Save вставляет или полностью перезаписывает заказ вместе с позициями.
func (r *orderRepository) Save(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var (
		paymentMethod    sql.NullString
		paymentTxnID     sql.NullString
		paymentAmount    sql.NullString
		paymentProcessed sql.NullBool
	)
	if order.Payment != nil {
		paymentMethod = sql.NullString{String: order.Payment.Method, Valid: true}
		paymentTxnID = sql.NullString{String: order.Payment.TransactionID, Valid: true}
		paymentAmount = sql.NullString{String: order.Payment.Amount.String(), Valid: true}
		paymentProcessed = sql.NullBool{Bool: order.Payment.Processed, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, customer_id, customer_name, customer_email, shipping_address,
			order_type, status,
			subtotal, discount_amount, tax_amount, shipping_cost, total,
			carrier, tracking_number,
			payment_method, payment_transaction_id, payment_amount, payment_processed,
			order_date, shipped_date, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		ON CONFLICT (id) DO UPDATE SET
			customer_id            = EXCLUDED.customer_id,
			customer_name          = EXCLUDED.customer_name,
			customer_email         = EXCLUDED.customer_email,
			shipping_address       = EXCLUDED.shipping_address,
			order_type             = EXCLUDED.order_type,
			status                 = EXCLUDED.status,
			subtotal               = EXCLUDED.subtotal,
			discount_amount        = EXCLUDED.discount_amount,
			tax_amount             = EXCLUDED.tax_amount,
			shipping_cost          = EXCLUDED.shipping_cost,
			total                  = EXCLUDED.total,
			carrier                = EXCLUDED.carrier,
			tracking_number        = EXCLUDED.tracking_number,
			payment_method         = EXCLUDED.payment_method,
			payment_transaction_id = EXCLUDED.payment_transaction_id,
			payment_amount         = EXCLUDED.payment_amount,
			payment_processed      = EXCLUDED.payment_processed,
			order_date             = EXCLUDED.order_date,
			shipped_date           = EXCLUDED.shipped_date,
			updated_at             = EXCLUDED.updated_at
	`,
		order.ID, order.CustomerID, order.CustomerName, order.CustomerEmail, order.ShippingAddress,
		string(order.Type), string(order.Status),
		order.Subtotal.String(), order.DiscountAmount.String(), order.TaxAmount.String(),
		order.ShippingCost.String(), order.Total.String(),
		order.Carrier, order.TrackingNumber,
		paymentMethod, paymentTxnID, paymentAmount, paymentProcessed,
		order.OrderDate, order.ShippedDate, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}

	// Позиции перезаписываются целиком: заказ мал, дифф не окупается.
	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}

	for i, item := range order.Items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				order_id, position, product_id, product_name, quantity, unit_price
			) VALUES ($1,$2,$3,$4,$5,$6)
		`,
			order.ID, i, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice.String(),
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save order: %w", err)
	}

	return nil
}

// GetByID возвращает заказ с позициями или ErrOrderNotFound.
func (r *orderRepository) GetByID(id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		order            domain.Order
		orderType        string
		status           string
		subtotal         string
		discountAmount   string
		taxAmount        string
		shippingCost     string
		total            string
		paymentMethod    sql.NullString
		paymentTxnID     sql.NullString
		paymentAmount    sql.NullString
		paymentProcessed sql.NullBool
		shippedDate      sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, customer_name, customer_email, shipping_address,
		       order_type, status,
		       subtotal, discount_amount, tax_amount, shipping_cost, total,
		       carrier, tracking_number,
		       payment_method, payment_transaction_id, payment_amount, payment_processed,
		       order_date, shipped_date, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.CustomerID, &order.CustomerName, &order.CustomerEmail, &order.ShippingAddress,
		&orderType, &status,
		&subtotal, &discountAmount, &taxAmount, &shippingCost, &total,
		&order.Carrier, &order.TrackingNumber,
		&paymentMethod, &paymentTxnID, &paymentAmount, &paymentProcessed,
		&order.OrderDate, &shippedDate, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	order.Type = domain.OrderType(orderType)
	order.Status = domain.OrderStatus(status)

	if order.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return domain.Order{}, fmt.Errorf("parse subtotal: %w", err)
	}
	if order.DiscountAmount, err = decimal.NewFromString(discountAmount); err != nil {
		return domain.Order{}, fmt.Errorf("parse discount amount: %w", err)
	}
	if order.TaxAmount, err = decimal.NewFromString(taxAmount); err != nil {
		return domain.Order{}, fmt.Errorf("parse tax amount: %w", err)
	}
	if order.ShippingCost, err = decimal.NewFromString(shippingCost); err != nil {
		return domain.Order{}, fmt.Errorf("parse shipping cost: %w", err)
	}
	if order.Total, err = decimal.NewFromString(total); err != nil {
		return domain.Order{}, fmt.Errorf("parse total: %w", err)
	}

	if paymentMethod.Valid {
		amount := decimal.Zero
		if paymentAmount.Valid {
			if amount, err = decimal.NewFromString(paymentAmount.String); err != nil {
				return domain.Order{}, fmt.Errorf("parse payment amount: %w", err)
			}
		}
		order.Payment = &domain.PaymentRecord{
			Method:        paymentMethod.String,
			TransactionID: paymentTxnID.String,
			Amount:        amount,
			Processed:     paymentProcessed.Bool,
		}
	}

	if shippedDate.Valid {
		t := shippedDate.Time
		order.ShippedDate = &t
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items

	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY position ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var (
			item      domain.OrderItem
			unitPrice string
		)
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &unitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parse unit price: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
