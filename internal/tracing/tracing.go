// Package tracing wraps OpenTelemetry so planner use cases can open spans
// without importing the SDK. Until Init runs, spans go to the global no-op
// provider.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/alexanderramin/studyslots"

var (
	providerOnce sync.Once
	providerErr  error
	provider     *sdktrace.TracerProvider
)

// Init installs a stdout exporter writing JSON spans to outputFile. It is a
// no-op when outputFile is empty. Only the first call has any effect. The
// returned shutdown flushes and closes the exporter.
func Init(serviceName, serviceVersion, outputFile string) (func(context.Context) error, error) {
	if outputFile == "" {
		return noopShutdown, nil
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return noopShutdown, fmt.Errorf("creating trace directory: %w", err)
	}
	f, err := os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return noopShutdown, fmt.Errorf("opening trace file: %w", err)
	}
	shutdown, err := InitWithWriter(serviceName, serviceVersion, f)
	if err != nil {
		f.Close()
		return noopShutdown, err
	}
	return func(ctx context.Context) error {
		err := shutdown(ctx)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}, nil
}

// InitWithWriter installs a stdout exporter that writes to w.
func InitWithWriter(serviceName, serviceVersion string, w io.Writer) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return noopShutdown, fmt.Errorf("creating span exporter: %w", err)
	}
	return InitWithExporter(serviceName, serviceVersion, exporter)
}

// InitWithExporter registers exporter behind the global tracer provider.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (func(context.Context) error, error) {
	if exporter == nil {
		return noopShutdown, nil
	}
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("service.version", serviceVersion),
			),
		)
		if err != nil {
			providerErr = fmt.Errorf("building trace resource: %w", err)
			return
		}
		provider = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(provider)
	})
	if providerErr != nil {
		return noopShutdown, providerErr
	}
	return func(ctx context.Context) error {
		if provider == nil {
			return nil
		}
		return provider.Shutdown(ctx)
	}, nil
}

func noopShutdown(context.Context) error { return nil }

// Span wraps an OpenTelemetry span.
type Span struct {
	span trace.Span
}

// StartSpan starts an internal span named name as a child of any span in ctx.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// SetAttributes attaches key/value pairs. Values of type int, bool and string
// keep their type; anything else is formatted with %v.
func (s *Span) SetAttributes(kv map[string]any) *Span {
	if s == nil || len(kv) == 0 {
		return s
	}
	attrs := make([]attribute.KeyValue, 0, len(kv))
	for k, v := range kv {
		switch val := v.(type) {
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		case string:
			attrs = append(attrs, attribute.String(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
	s.span.SetAttributes(attrs...)
	return s
}

// End records err (or OK when nil) and finishes the span.
func (s *Span) End(err error) {
	if s == nil {
		return
	}
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
