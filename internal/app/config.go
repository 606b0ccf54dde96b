package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fulfillment/internal/service/pricing"
)

// Config описывает настройки запуска приложения. Все поля перекрываются
// переменными окружения FULFILLMENT_*.
type Config struct {
	HTTPAddr    string
	MetricsAddr string

	TaxRate decimal.Decimal
	// PercentageDiscount — процент для стратегии percentage (10 = 10%).
	PercentageDiscount decimal.Decimal
	VIPCustomers       []string

	// InitialStock — стартовые остатки склада вида product_id → qty.
	InitialStock map[string]int

	// KafkaBrokers — список брокеров через запятую. Пусто — события не публикуются.
	KafkaBrokers string
	// PostgresDSN — строка подключения. Пусто — заказы хранятся в памяти.
	PostgresDSN string
}

// DefaultConfig возвращает конфигурацию для локальной разработки.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:           ":8080",
		MetricsAddr:        ":9090",
		TaxRate:            pricing.DefaultTaxRate,
		PercentageDiscount: decimal.NewFromInt(10),
		InitialStock:       map[string]int{},
	}
}

// ConfigFromEnv собирает конфигурацию из переменных окружения поверх
// значений по умолчанию.
func ConfigFromEnv(logger *log.Entry) Config {
	if logger == nil {
		logger = log.WithField("component", "config")
	}
	cfg := DefaultConfig()

	if addr := os.Getenv("FULFILLMENT_HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if addr := os.Getenv("FULFILLMENT_METRICS_ADDR"); addr != "" {
		cfg.MetricsAddr = addr
	}
	if rate := os.Getenv("FULFILLMENT_TAX_RATE"); rate != "" {
		parsed, err := decimal.NewFromString(rate)
		if err != nil || parsed.IsNegative() {
			logger.WithField("tax_rate", rate).Warn("invalid tax rate, using default")
		} else {
			cfg.TaxRate = parsed
		}
	}
	if percent := os.Getenv("FULFILLMENT_PERCENTAGE_DISCOUNT"); percent != "" {
		parsed, err := decimal.NewFromString(percent)
		if err != nil || parsed.IsNegative() {
			logger.WithField("percentage_discount", percent).Warn("invalid percentage discount, using default")
		} else {
			cfg.PercentageDiscount = parsed
		}
	}
	if vips := os.Getenv("FULFILLMENT_VIP_CUSTOMERS"); vips != "" {
		for _, id := range strings.Split(vips, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.VIPCustomers = append(cfg.VIPCustomers, id)
			}
		}
	}
	if stock := os.Getenv("FULFILLMENT_INITIAL_STOCK"); stock != "" {
		cfg.InitialStock = parseStock(stock, logger)
	}
	cfg.KafkaBrokers = os.Getenv("FULFILLMENT_KAFKA_BROKERS")
	cfg.PostgresDSN = os.Getenv("FULFILLMENT_POSTGRES_DSN")

	return cfg
}

// parseStock разбирает строку вида "laptop=100,mouse=50" в карту остатков.
func parseStock(raw string, logger *log.Entry) map[string]int {
	if logger == nil {
		logger = log.WithField("component", "config")
	}
	stock := map[string]int{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			logger.WithField("entry", pair).Warn("skipping malformed stock entry")
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || qty < 0 {
			logger.WithField("entry", pair).Warn("skipping malformed stock entry")
			continue
		}
		stock[strings.TrimSpace(parts[0])] = qty
	}
	return stock
}
