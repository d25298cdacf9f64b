package core

import (
	"context"
	"encoding/json"
	"expvar"
	"io"
	"sync"
	"time"
)

// ExpvarMetricsRecorder publishes per-operation counters and cumulative
// latency under an expvar map.
type ExpvarMetricsRecorder struct {
	metrics *expvar.Map
}

// NewExpvarMetricsRecorder publishes a new expvar map under name.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	return &ExpvarMetricsRecorder{metrics: expvar.NewMap(name)}
}

// Observe implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	r.metrics.Add(operation+"."+outcome, 1)
	r.metrics.Add(operation+".duration_us", duration.Microseconds())
}

// JSONTraceTracer writes one JSON line per finished span, suitable for piping
// into log collection.
type JSONTraceTracer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONTraceTracer writes span records to w.
func NewJSONTraceTracer(w io.Writer) *JSONTraceTracer {
	return &JSONTraceTracer{enc: json.NewEncoder(w)}
}

// Start implements Tracer.
func (t *JSONTraceTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &jsonSpan{tracer: t, operation: operation, start: time.Now()}
}

type jsonSpan struct {
	tracer    *JSONTraceTracer
	operation string
	start     time.Time
}

type spanRecord struct {
	Operation  string `json:"operation"`
	StartedAt  string `json:"started_at"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

func (s *jsonSpan) End(err error) {
	record := spanRecord{
		Operation:  s.operation,
		StartedAt:  s.start.UTC().Format(time.RFC3339Nano),
		DurationMS: time.Since(s.start).Milliseconds(),
	}
	if err != nil {
		record.Error = err.Error()
	}
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	_ = s.tracer.enc.Encode(record)
}
