package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/domain"
	"github.com/vladislavdragonenkov/fulfillment/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/discount"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/fulfillment"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/handler"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/inventory"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/notification"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/payment"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/pricing"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/shipping"
	"github.com/vladislavdragonenkov/fulfillment/internal/service/validation"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/memory"
	"github.com/vladislavdragonenkov/fulfillment/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Repo         domain.OrderRepository
	Inventory    domain.InventoryService
	Orchestrator fulfillment.Orchestrator
	Logger       *log.Entry

	// Store не nil только при работе поверх PostgreSQL.
	Store *postgres.Store
	// KafkaProducer не nil только при настроенных брокерах.
	KafkaProducer *kafka.Producer
}

// NewDependencies создаёт и связывает все зависимости приложения.
// По умолчанию заказы хранятся в памяти, склад — in-memory StockService;
// PostgreSQL и Kafka подключаются, когда заданы в конфигурации.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	deps.Repo = memory.NewOrderRepository()
	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		deps.Store = store
		deps.Repo = postgres.NewOrderRepository(store)
		logger.Info("postgres storage initialized")
	}

	stock := inventory.NewStockService(cfg.InitialStock, logger.WithField("component", "inventory"))
	deps.Inventory = stock

	notifierLogger := logger.WithField("component", "notifier")
	notifiers := []domain.Notifier{
		notification.NewEmailNotifier(notifierLogger),
		notification.NewSMSNotifier(notifierLogger),
	}

	producer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err == nil && producer != nil {
		deps.KafkaProducer = producer
		notifiers = append(notifiers, notification.NewKafkaNotifier(producer, notifierLogger))
	}

	discountLogger := logger.WithField("component", "discount")
	discounts := discount.NewRegistry(
		discount.NewNone(),
		discount.NewPercentage(cfg.PercentageDiscount, discountLogger),
		discount.NewBulk(discountLogger),
		discount.NewVIP(cfg.VIPCustomers, discountLogger),
	)

	deps.Orchestrator = fulfillment.NewOrchestrator(
		validation.NewOrderValidator(logger.WithField("component", "validation")),
		stock,
		discounts,
		shipping.NewDefaultRegistry(logger.WithField("component", "shipping")),
		pricing.NewCalculator(cfg.TaxRate, logger.WithField("component", "pricing")),
		payment.NewDefaultRegistry(logger.WithField("component", "payment")),
		handler.NewDefaultRegistry(logger.WithField("component", "handler")),
		deps.Repo,
		notification.NewFanout(notifierLogger, notifiers...),
		logger.WithField("component", "fulfillment"),
	)

	return deps, nil
}

// Close освобождает внешние ресурсы.
func (d *Dependencies) Close() {
	closeKafka(d.KafkaProducer, d.Logger)
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
