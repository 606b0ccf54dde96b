package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics содержит метрики конвейера исполнения заказов.
type PipelineMetrics struct {
	// Счётчики исходов
	pipelineStarted    prometheus.Counter
	pipelineCompleted  prometheus.Counter
	pipelineFailed     prometheus.Counter
	validationFailed   prometheus.Counter
	inventoryShortfall prometheus.Counter
	ordersCancelled    prometheus.Counter

	// Гистограммы времени выполнения
	pipelineDuration prometheus.Histogram
	stageDuration    *prometheus.HistogramVec

	// Gauge активных прогонов
	activePipelines prometheus.Gauge
}

// NewPipelineMetrics регистрирует метрики в DefaultRegisterer.
func NewPipelineMetrics() *PipelineMetrics {
	return newPipelineMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newPipelineMetricsWithRegisterer(registerer prometheus.Registerer) *PipelineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &PipelineMetrics{
		pipelineStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_pipeline_started_total",
			Help: "Total number of fulfillment pipeline runs started",
		}),
		pipelineCompleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_pipeline_completed_total",
			Help: "Total number of fulfillment pipeline runs completed successfully",
		}),
		pipelineFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_pipeline_failed_total",
			Help: "Total number of fulfillment pipeline runs failed",
		}),
		validationFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_validation_failed_total",
			Help: "Total number of orders rejected by validation",
		}),
		inventoryShortfall: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_inventory_shortfall_total",
			Help: "Total number of orders aborted due to insufficient inventory",
		}),
		ordersCancelled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "fulfillment_orders_cancelled_total",
			Help: "Total number of orders cancelled",
		}),
		pipelineDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "fulfillment_pipeline_duration_seconds",
			Help:    "Duration of fulfillment pipeline runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		stageDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "fulfillment_stage_duration_seconds",
			Help:    "Duration of individual pipeline stages in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"stage"}),
		activePipelines: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "fulfillment_active_pipelines",
			Help: "Number of currently running pipeline executions",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordPipelineStarted увеличивает счётчик запущенных прогонов.
func (m *PipelineMetrics) RecordPipelineStarted() {
	m.pipelineStarted.Inc()
	m.activePipelines.Inc()
}

// RecordPipelineCompleted увеличивает счётчик успешных прогонов.
func (m *PipelineMetrics) RecordPipelineCompleted() {
	m.pipelineCompleted.Inc()
	m.activePipelines.Dec()
}

// RecordPipelineFailed увеличивает счётчик неудачных прогонов.
func (m *PipelineMetrics) RecordPipelineFailed() {
	m.pipelineFailed.Inc()
	m.activePipelines.Dec()
}

// RecordValidationFailed увеличивает счётчик отклонённых валидацией заказов.
func (m *PipelineMetrics) RecordValidationFailed() {
	m.validationFailed.Inc()
}

// RecordInventoryShortfall увеличивает счётчик нехваток стока.
func (m *PipelineMetrics) RecordInventoryShortfall() {
	m.inventoryShortfall.Inc()
}

// RecordOrderCancelled увеличивает счётчик отменённых заказов.
func (m *PipelineMetrics) RecordOrderCancelled() {
	m.ordersCancelled.Inc()
}

// RecordPipelineDuration записывает длительность прогона.
func (m *PipelineMetrics) RecordPipelineDuration(duration time.Duration) {
	m.pipelineDuration.Observe(duration.Seconds())
}

// RecordStageDuration записывает длительность шага конвейера.
func (m *PipelineMetrics) RecordStageDuration(stage string, duration time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}
