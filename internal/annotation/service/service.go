// Package service validates and persists person labels.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"swipetree/internal/annotation/models"
	"swipetree/internal/platform/metrics"
	dErrors "swipetree/pkg/domain-errors"
	"swipetree/pkg/platform/sentinel"
	pstrings "swipetree/pkg/platform/strings"
	"swipetree/pkg/requestcontext"
)

var tracer = otel.Tracer("swipetree.annotation")

// LabelStore is implemented by the memory, Redis and Postgres stores.
type LabelStore interface {
	FindByID(ctx context.Context, id string) (*models.Label, error)
	FindMany(ctx context.Context, ids []string) (map[string]models.Label, error)
	Upsert(ctx context.Context, l *models.Label) error
}

// Service reads and writes labels.
type Service struct {
	store   LabelStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store LabelStore, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Get returns the label for id. A missing label is a CodeNotFound error so
// callers can tell "no label yet" apart from a failure.
func (s *Service) Get(ctx context.Context, id string) (*models.Label, error) {
	ctx, span := tracer.Start(ctx, "annotation.Get", trace.WithAttributes(attribute.String("person.id", id)))
	defer span.End()

	if id == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing id")
	}
	l, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncLabelOp("get", "miss")
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "label not found")
		}
		s.metrics.IncLabelOp("get", "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "store read failed")
		s.logger.ErrorContext(ctx, "failed to read label",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", requestcontext.SessionID(ctx),
			"id", id,
			"error", err,
		)
		return nil, s.storeError(err, "failed to read label")
	}
	s.metrics.IncLabelOp("get", "hit")
	return l, nil
}

// GetMany returns every existing label among ids. Blank and repeated ids
// are dropped before the store is asked.
func (s *Service) GetMany(ctx context.Context, ids []string) (map[string]models.Label, error) {
	ctx, span := tracer.Start(ctx, "annotation.GetMany", trace.WithAttributes(attribute.Int("person.count", len(ids))))
	defer span.End()

	keep := pstrings.DedupeAndTrim(ids)
	out, err := s.store.FindMany(ctx, keep)
	if err != nil {
		s.metrics.IncLabelOp("get_many", "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "store read failed")
		s.logger.ErrorContext(ctx, "failed to read labels",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", requestcontext.SessionID(ctx),
			"count", len(keep),
			"error", err,
		)
		return nil, s.storeError(err, "failed to read labels")
	}
	s.metrics.IncLabelOp("get_many", "ok")
	return out, nil
}

// Put normalizes, validates and stores the label, stamping UpdatedAt with
// the request time. It returns the stored value.
func (s *Service) Put(ctx context.Context, l models.Label) (*models.Label, error) {
	ctx, span := tracer.Start(ctx, "annotation.Put", trace.WithAttributes(attribute.String("person.id", l.ID)))
	defer span.End()

	l.Normalize()
	if err := l.Validate(); err != nil {
		s.metrics.IncLabelOp("set", "invalid")
		return nil, err
	}
	l.UpdatedAt = requestcontext.Now(ctx).UTC()

	if err := s.store.Upsert(ctx, &l); err != nil {
		s.metrics.IncLabelOp("set", "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "store write failed")
		s.logger.ErrorContext(ctx, "failed to save label",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", requestcontext.SessionID(ctx),
			"id", l.ID,
			"error", err,
		)
		return nil, s.storeError(err, "failed to save label")
	}
	s.metrics.IncLabelOp("set", "ok")
	s.logger.InfoContext(ctx, "label saved",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", requestcontext.SessionID(ctx),
		"id", l.ID,
	)
	return &l, nil
}

func (s *Service) storeError(err error, msg string) error {
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
