package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/hatlonely/surrealauth/log/logger"
	"github.com/hatlonely/surrealauth/surql"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ObservableOptions struct {
	// EnableMetrics 是否启用指标收集
	EnableMetrics bool `cfg:"enableMetrics" def:"true"`

	// EnableLogging 是否启用日志记录
	EnableLogging bool `cfg:"enableLogging" def:"true"`

	// EnableTracing 是否启用分布式追踪
	EnableTracing bool `cfg:"enableTracing" def:"false"`

	// Name 指标名前缀，同时作为日志和 span 的 component 字段
	Name string `cfg:"name" def:"surrealauth"`
}

// ObservableMetrics 查询执行的 prometheus 指标
type ObservableMetrics struct {
	queryCounter     *prometheus.CounterVec
	queryDuration    *prometheus.HistogramVec
	activeQueries    *prometheus.GaugeVec
	bindingHistogram *prometheus.HistogramVec
}

// NewObservableMetrics 创建并注册指标，同名指标已注册时复用已有的
func NewObservableMetrics(name string) (*ObservableMetrics, error) {
	var err error
	metrics := &ObservableMetrics{}

	if metrics.queryCounter, err = register(prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name + "_queries_total",
			Help: "Total number of surrealdb queries",
		},
		[]string{"operation", "status"},
	)); err != nil {
		return nil, err
	}
	if metrics.queryDuration, err = register(prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name + "_query_duration_seconds",
			Help:    "Duration of surrealdb queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"operation"},
	)); err != nil {
		return nil, err
	}
	if metrics.activeQueries, err = register(prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name + "_active_queries",
			Help: "Number of in-flight surrealdb queries",
		},
		[]string{"operation"},
	)); err != nil {
		return nil, err
	}
	if metrics.bindingHistogram, err = register(prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name + "_query_bindings",
			Help:    "Number of bound parameters per query",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"operation"},
	)); err != nil {
		return nil, err
	}

	return metrics, nil
}

func register[C prometheus.Collector](c C) (C, error) {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, errors.Wrap(err, "prometheus.Register failed")
	}
	return c, nil
}

// ObservableExecutor 装饰器，为 Executor 添加指标、日志和追踪
type ObservableExecutor struct {
	executor Executor

	logger  logger.Logger
	metrics *ObservableMetrics
	tracer  trace.Tracer
	name    string
}

func NewObservableExecutor(executor Executor, options *ObservableOptions, l logger.Logger) (*ObservableExecutor, error) {
	if executor == nil {
		return nil, errors.New("executor is nil")
	}
	if options == nil {
		options = &ObservableOptions{}
	}
	if options.Name == "" {
		options.Name = "surrealauth"
	}

	obs := &ObservableExecutor{
		executor: executor,
		name:     options.Name,
	}

	if options.EnableLogging && l != nil {
		obs.logger = l.WithGroup("observableExecutor")
	}
	if options.EnableMetrics {
		metrics, err := NewObservableMetrics(options.Name)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to create metrics")
		}
		obs.metrics = metrics
	}
	if options.EnableTracing {
		obs.tracer = otel.Tracer(fmt.Sprintf("surrealauth.%s", options.Name))
	}

	return obs, nil
}

func (obs *ObservableExecutor) Connect(ctx context.Context) error {
	_, err := obs.observe(ctx, "connect", 0, func(ctx context.Context) (any, error) {
		return nil, obs.executor.Connect(ctx)
	})
	return err
}

func (obs *ObservableExecutor) Connected() bool {
	return obs.executor.Connected()
}

func (obs *ObservableExecutor) Query(ctx context.Context, query *surql.Query) (any, error) {
	return obs.observe(ctx, operationOf(ctx), len(query.Values()), func(ctx context.Context) (any, error) {
		return obs.executor.Query(ctx, query)
	})
}

func (obs *ObservableExecutor) Close() error {
	_, err := obs.observe(context.Background(), "close", 0, func(ctx context.Context) (any, error) {
		return nil, obs.executor.Close()
	})
	return err
}

func (obs *ObservableExecutor) observe(ctx context.Context, operation string, bindings int, fn func(context.Context) (any, error)) (any, error) {
	start := time.Now()

	var span trace.Span
	if obs.tracer != nil {
		ctx, span = obs.tracer.Start(ctx, fmt.Sprintf("surrealdb.%s", operation),
			trace.WithAttributes(
				attribute.String("component", obs.name),
				attribute.String("operation", operation),
				attribute.Int("bindings", bindings),
			),
		)
		defer span.End()
	}

	if obs.metrics != nil {
		obs.metrics.bindingHistogram.WithLabelValues(operation).Observe(float64(bindings))
		obs.metrics.activeQueries.WithLabelValues(operation).Inc()
		defer obs.metrics.activeQueries.WithLabelValues(operation).Dec()
	}

	result, err := fn(ctx)
	duration := time.Since(start)

	if span != nil {
		span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}

	if obs.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		obs.metrics.queryCounter.WithLabelValues(operation, status).Inc()
		obs.metrics.queryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	}

	if obs.logger != nil {
		if err != nil {
			obs.logger.ErrorContext(ctx, "surrealdb operation failed",
				"component", obs.name,
				"operation", operation,
				"duration_ms", duration.Milliseconds(),
				"error", err.Error(),
			)
		} else {
			obs.logger.InfoContext(ctx, "surrealdb operation completed",
				"component", obs.name,
				"operation", operation,
				"duration_ms", duration.Milliseconds(),
			)
		}
	}

	return result, err
}

type operationKey struct{}

// withOperation 在 ctx 中记录当前的适配器方法名，用作指标标签
func withOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey{}, operation)
}

func operationOf(ctx context.Context) string {
	if operation, ok := ctx.Value(operationKey{}).(string); ok && operation != "" {
		return operation
	}
	return "query"
}
