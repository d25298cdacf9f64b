// Package core exposes the sales-management service: typed repository
// operations per entity, cross-entity aggregation, and CSV export, all over
// an injected persistent store.
package core

import (
	"context"
	"time"

	"cellarcore/pkg/domain"
)

// Service wraps a persistent store with per-entity operations. Every write
// runs inside a store transaction and returns the rule evaluation result for
// the commit.
type Service struct {
	store   domain.PersistentStore
	metrics MetricsRecorder
	tracer  Tracer
}

// ServiceOption customises Service construction.
type ServiceOption func(*Service)

// WithMetricsRecorder attaches a metrics sink observing every operation.
func WithMetricsRecorder(rec MetricsRecorder) ServiceOption {
	return func(s *Service) { s.metrics = rec }
}

// WithTracer attaches a tracer spanning every operation.
func WithTracer(tr Tracer) ServiceOption {
	return func(s *Service) { s.tracer = tr }
}

// NewService constructs a service over the given store.
func NewService(store domain.PersistentStore, opts ...ServiceOption) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying persistent store.
func (s *Service) Store() domain.PersistentStore { return s.store }

// Close releases the underlying store.
func (s *Service) Close() error { return s.store.Close() }

// instrument runs fn with the configured tracer and metrics recorder.
func (s *Service) instrument(ctx context.Context, operation string, fn func(context.Context) error) error {
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operation)
	}
	start := time.Now()
	err := fn(ctx)
	if s.metrics != nil {
		s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
	}
	if span != nil {
		span.End(err)
	}
	return err
}

func (s *Service) run(ctx context.Context, operation string, fn func(domain.Transaction) error) (Result, error) {
	var result Result
	err := s.instrument(ctx, operation, func(ctx context.Context) error {
		var err error
		result, err = s.store.RunInTransaction(ctx, fn)
		return err
	})
	return result, err
}

func (s *Service) view(ctx context.Context, operation string, fn func(domain.TransactionView) error) error {
	return s.instrument(ctx, operation, func(ctx context.Context) error {
		return s.store.View(ctx, fn)
	})
}
