package jaeger

import (
	"context"
	"io"

	"github.com/opentracing/opentracing-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

func StartSpanFromContext(ctx context.Context, spanName string, req interface{}) (opentracing.Span, context.Context) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, spanName)

	dbSpan.SetTag("request", req)
	dbSpan.LogKV("event", "request", "value", req)
	return dbSpan, ctx
}

// Setup installs a jaeger tracer as the opentracing global. An empty host
// leaves the noop tracer in place.
func Setup(serviceName, hostPort string) (io.Closer, error) {
	if hostPort == "" {
		return nil, nil
	}

	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: hostPort,
		},
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, err
	}

	opentracing.SetGlobalTracer(tracer)

	return closer, nil
}
