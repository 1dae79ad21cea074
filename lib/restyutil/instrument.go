package restyutil

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentOutput receives a formatted dump of a single HTTP exchange.
type InstrumentOutput interface {
	Write(id string, contents string)
}

type exchangeIDKey struct{}

type recorder struct {
	output InstrumentOutput
	seq    atomic.Uint64
}

// InstrumentClient attaches tracing middleware to the client. Every
// request gets a span carrying its headers and bodies as attributes.
// When output is non-nil the raw exchange is also dumped to it, one
// numbered dump per request.
//
// `tracer` can be nil, it will default to a library name of "resty".
// Call this at most once per client, the hooks stack otherwise.
func InstrumentClient(client *resty.Client, tracer trace.Tracer, output InstrumentOutput) {
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}

	r := &recorder{output: output}
	client.OnBeforeRequest(r.start(tracer))
	client.OnAfterResponse(r.finish)
	client.OnError(r.fail)
}

func (r *recorder) start(tracer trace.Tracer) resty.RequestMiddleware {
	return func(_ *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), req.Method)

		id := strconv.FormatUint(r.seq.Add(1), 10)
		ctx = context.WithValue(ctx, exchangeIDKey{}, id)
		slog.DebugContext(
			ctx, "start request",
			"method", req.Method,
			"url", req.URL,
			"exchange", id,
		)

		req.SetContext(ctx)
		return nil
	}
}

func (r *recorder) finish(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	// the raw request only exists after the round trip, so request
	// attributes cannot be recorded in the OnBeforeRequest hook
	span.SetName(fmt.Sprintf("http %s", res.Request.Method))
	span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)

	var attrs []attribute.KeyValue
	headerAttributes(&attrs, "request", res.Request.Header)
	headerAttributes(&attrs, "response", res.Header())
	span.SetAttributes(attrs...)
	span.SetAttributes(attribute.String("request/body", requestBody(res.Request.RawRequest)))
	span.SetAttributes(attribute.String("response/body", res.String()))

	if r.output != nil {
		id, _ := ctx.Value(exchangeIDKey{}).(string)
		r.output.Write(id, formatExchange(res))
	}
	slog.DebugContext(
		ctx, "request succeeded",
		"method", res.Request.Method,
		"url", res.Request.URL,
		"status", res.StatusCode(),
	)
	return nil
}

func (r *recorder) fail(req *resty.Request, err error) {
	ctx := req.Context()
	span := trace.SpanFromContext(ctx)
	defer span.End()

	defer span.RecordError(err)
	defer span.SetStatus(codes.Error, "request failed")

	span.SetName(fmt.Sprintf("http %s", req.Method))
	var attrs []attribute.KeyValue
	headerAttributes(&attrs, "request", req.Header)
	span.SetAttributes(attrs...)

	slog.ErrorContext(
		ctx, "request failed",
		"method", req.Method,
		"url", req.URL,
		"err", err,
	)

	if req.RawRequest == nil {
		return
	}
	span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	span.SetAttributes(attribute.String("request/body", requestBody(req.RawRequest)))
}

func headerAttributes(out *[]attribute.KeyValue, prefix string, headers http.Header) {
	for header, values := range headers {
		if len(values) == 1 {
			*out = append(*out, attribute.String(
				fmt.Sprintf("%s/header: %s", prefix, header), values[0],
			))
			continue
		}
		for i, v := range values {
			*out = append(*out, attribute.String(
				fmt.Sprintf("%s/header: %s (%d)", prefix, header, i), v,
			))
		}
	}
}
