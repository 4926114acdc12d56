package rest

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// requestMetrics instruments the transport with an OpenTelemetry
// request counter and duration histogram. The meter provider is
// whatever the process installed globally; with none installed the
// instruments are no-ops.
type requestMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newRequestMetrics() (*requestMetrics, error) {
	meter := otel.GetMeterProvider().Meter("github.com/otterscale/kubeclient/rest")

	requests, err := meter.Int64Counter(
		"kubeclient.requests",
		metric.WithDescription("Number of Kubernetes API requests issued."),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"kubeclient.request.duration",
		metric.WithDescription("Kubernetes API request duration."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &requestMetrics{requests: requests, duration: duration}, nil
}

func (m *requestMetrics) record(ctx context.Context, method string, code int, start time.Time) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.Int("code", code),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}
