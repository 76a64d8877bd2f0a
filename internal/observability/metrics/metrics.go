package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	lotsCreated       metric.Int64Counter
	productsCreated   metric.Int64Counter
	lotsReceived      metric.Int64Counter
	installs          metric.Int64Counter
	inspections       metric.Int64Counter
	collaboratorCalls metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "railtrack"
	}
	meter := provider.Meter(name)

	lotsCreated, err := meter.Int64Counter("railtrack_lots_created_total")
	if err != nil {
		return nil, err
	}
	productsCreated, err := meter.Int64Counter("railtrack_products_created_total")
	if err != nil {
		return nil, err
	}
	lotsReceived, err := meter.Int64Counter("railtrack_lots_received_total")
	if err != nil {
		return nil, err
	}
	installs, err := meter.Int64Counter("railtrack_installs_total")
	if err != nil {
		return nil, err
	}
	inspections, err := meter.Int64Counter("railtrack_inspections_total")
	if err != nil {
		return nil, err
	}
	collaboratorCalls, err := meter.Int64Counter("railtrack_collaborator_calls_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		lotsCreated:       lotsCreated,
		productsCreated:   productsCreated,
		lotsReceived:      lotsReceived,
		installs:          installs,
		inspections:       inspections,
		collaboratorCalls: collaboratorCalls,
	}, nil
}

// RecordLotCreated increments lot creation counts.
func (m *Metrics) RecordLotCreated(ctx context.Context, productType string, quantity int) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("product_type", strings.TrimSpace(productType)))
	m.lotsCreated.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.productsCreated.Add(ctx, int64(quantity), metric.WithAttributes(attrs...))
}

// RecordLotReceived increments depot receipt counts.
func (m *Metrics) RecordLotReceived(ctx context.Context, depotID string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("depot_id", strings.TrimSpace(depotID)))
	m.lotsReceived.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordInstall increments installation counts.
func (m *Metrics) RecordInstall(ctx context.Context) {
	if m == nil {
		return
	}
	m.installs.Add(ctx, 1)
}

// RecordInspection increments inspection counts labeled by the derived verdict.
func (m *Metrics) RecordInspection(ctx context.Context, verdict string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("verdict", strings.TrimSpace(verdict)))
	m.inspections.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCollaboratorCall counts outbound collaborator calls by outcome.
func (m *Metrics) RecordCollaboratorCall(ctx context.Context, collaborator, outcome string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("collaborator", strings.TrimSpace(collaborator)),
		attribute.String("outcome", strings.TrimSpace(outcome)),
	)
	m.collaboratorCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"product_type": {},
	"depot_id":     {},
	"verdict":      {},
	"collaborator": {},
	"outcome":      {},
	"status_code":  {},
	"route":        {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
