package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRequestProducesServerSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	env := newTestEnv(t)
	rec := env.request(t, http.MethodGet, "/api/amm/pools", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	spans := recorder.Ended()
	require.NotEmpty(t, spans)

	span := spans[len(spans)-1]
	require.Equal(t, "GET /api/amm/pools", span.Name())

	var status int64
	for _, attr := range span.Attributes() {
		if string(attr.Key) == "http.status_code" {
			status = attr.Value.AsInt64()
		}
	}
	require.EqualValues(t, http.StatusOK, status)
}
