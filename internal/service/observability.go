package service

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *zap.Logger
}

// NewLogUseCaseObserver reports use-case events on logger. Failures log at
// error level, everything else at debug.
func NewLogUseCaseObserver(logger *zap.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := make([]zap.Field, 0, 4+len(event.Fields))
	fields = append(fields,
		zap.String("use_case", event.Name),
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
		zap.Bool("success", event.Success),
	)
	for k, v := range event.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	if event.Err != nil {
		fields = append(fields, zap.Error(event.Err))
		o.logger.Error("service_use_case", fields...)
		return
	}
	o.logger.Debug("service_use_case", fields...)
}

// MetricsUseCaseObserver records use-case latency and outcome counts.
type MetricsUseCaseObserver struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewMetricsUseCaseObserver registers its collectors on reg.
func NewMetricsUseCaseObserver(reg prometheus.Registerer) *MetricsUseCaseObserver {
	factory := promauto.With(reg)
	return &MetricsUseCaseObserver{
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "escopo_use_case_duration_seconds",
			Help:    "Duration of service use cases",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"use_case", "success"}),
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "escopo_use_case_total",
			Help: "Total number of service use cases executed",
		}, []string{"use_case", "success"}),
	}
}

func (o *MetricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	success := strconv.FormatBool(event.Success)
	o.duration.WithLabelValues(event.Name, success).Observe(event.Duration.Seconds())
	o.total.WithLabelValues(event.Name, success).Inc()
}

type multiUseCaseObserver []UseCaseObserver

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live multiUseCaseObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	default:
		return live
	}
}

// observe reports a finished use case. Call it deferred with a pointer to the
// named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err *error) {
	event := UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *err == nil,
		Err:       *err,
		Fields:    fields,
	}
	obs.ObserveUseCase(ctx, event)
}
