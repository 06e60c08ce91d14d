package httpclient

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jigsawstack/jigsawstack-go/httpclient"

// WithTracerProvider records one client span per request. Without it the
// global provider is used, which is a no-op unless the application sets one.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Client) {
		if provider != nil {
			c.tracer = provider.Tracer(tracerName)
		}
	}
}

func (c *Client) startSpan(ctx context.Context, plan *plan) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, "jigsawstack "+plan.method+" "+plan.path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", plan.method),
			attribute.String("url.path", plan.path),
			attribute.String("jigsawstack.request_id", plan.requestID),
			attribute.Bool("jigsawstack.stream", plan.stream),
		),
	)
}

// endSpan closes span. status is zero when no response was received.
func endSpan(span trace.Span, status int, err error) {
	if status > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

func injectTraceContext(ctx context.Context, header http.Header) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(header))
}
