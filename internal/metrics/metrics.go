// Package metrics exposes OpenTelemetry instruments for capture activity,
// with an optional Prometheus scrape endpoint and an optional OTLP push
// exporter. Either, both, or neither can be configured; Metrics degrades
// to a no-op recorder when no endpoints are set.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics records counters and histograms for captured mDNS traffic.
type Metrics struct {
	messagesCaptured metric.Int64Counter
	decodeErrors     metric.Int64Counter
	recordTypes      metric.Int64Counter
	captureLatency   metric.Float64Histogram

	provider   *sdkmetric.MeterProvider
	promServer *http.Server
}

// New builds a Metrics recorder. otlpEndpoint and prometheusEndpoint are
// both optional; pass "" to skip either exporter.
func New(otlpEndpoint, prometheusEndpoint string) (*Metrics, error) {
	var readers []sdkmetric.Option
	m := &Metrics{}

	if prometheusEndpoint != "" {
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		readers = append(readers, sdkmetric.WithReader(exporter))
		m.promServer = startPrometheusServer(prometheusEndpoint)
	}

	if otlpEndpoint != "" {
		exporter, err := otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(otlpEndpoint),
			otlpmetrichttp.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
		}
		readers = append(readers, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))))
	}

	provider := sdkmetric.NewMeterProvider(readers...)
	m.provider = provider
	meter := provider.Meter("mdnsexplorer/capture")

	var err error
	m.messagesCaptured, err = meter.Int64Counter("mdns_messages_captured_total",
		metric.WithDescription("mDNS messages captured off the wire"))
	if err != nil {
		return nil, fmt.Errorf("failed to create messages_captured counter: %w", err)
	}

	m.decodeErrors, err = meter.Int64Counter("mdns_decode_errors_total",
		metric.WithDescription("captured packets that failed to decode"))
	if err != nil {
		return nil, fmt.Errorf("failed to create decode_errors counter: %w", err)
	}

	m.recordTypes, err = meter.Int64Counter("mdns_resource_records_total",
		metric.WithDescription("resource records seen, by type"))
	if err != nil {
		return nil, fmt.Errorf("failed to create record_types counter: %w", err)
	}

	m.captureLatency, err = meter.Float64Histogram("mdns_capture_latency_seconds",
		metric.WithDescription("time from packet read to store insert"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create capture_latency histogram: %w", err)
	}

	return m, nil
}

// RecordCapture increments the captured-message counter.
func (m *Metrics) RecordCapture(ctx context.Context, iface string) {
	m.messagesCaptured.Add(ctx, 1, metric.WithAttributes(attribute.String("interface", iface)))
}

// RecordDecodeError increments the decode-error counter.
func (m *Metrics) RecordDecodeError(ctx context.Context, iface string) {
	m.decodeErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("interface", iface)))
}

// RecordRecordType increments the per-type resource record counter.
func (m *Metrics) RecordRecordType(ctx context.Context, recordType string) {
	m.recordTypes.Add(ctx, 1, metric.WithAttributes(attribute.String("record_type", recordType)))
}

// RecordLatency observes the elapsed time between packet read and store insert.
func (m *Metrics) RecordLatency(ctx context.Context, d time.Duration) {
	m.captureLatency.Record(ctx, d.Seconds())
}

// Shutdown flushes and stops all exporters and the Prometheus server, if any.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m.promServer != nil {
		if err := m.promServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down prometheus server: %w", err)
		}
	}
	if m.provider != nil {
		if err := m.provider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down meter provider: %w", err)
		}
	}
	return nil
}

func startPrometheusServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
