package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/libpack/internal/core/ports"
)

// NewProvider creates a tracer provider that reports every finished span to logger at
// debug level, so verbose runs show where build time goes.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(&logProcessor{logger: logger}),
	)
}

// logProcessor implements sdktrace.SpanProcessor by logging ended spans.
type logProcessor struct {
	logger ports.Logger
}

// OnStart does nothing.
func (p *logProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration, attributes and failure status.
func (p *logProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	args := []any{"span", s.Name(), "duration", s.EndTime().Sub(s.StartTime())}
	for _, attr := range s.Attributes() {
		args = append(args, string(attr.Key), attr.Value.Emit())
	}
	if status := s.Status(); status.Code == codes.Error {
		args = append(args, "error", status.Description)
	}
	p.logger.Debug("span ended", args...)
}

// ForceFlush does nothing.
func (p *logProcessor) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (p *logProcessor) Shutdown(context.Context) error {
	return nil
}
