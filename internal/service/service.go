// Package service wires the analyzer, record store, filter engine and
// natural-language translator into the operations the HTTP API and CLI use.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/filter"
	"github.com/rcliao/string-analyzer/internal/logger"
	"github.com/rcliao/string-analyzer/internal/metrics"
	"github.com/rcliao/string-analyzer/internal/model"
	"github.com/rcliao/string-analyzer/internal/nlquery"
	"github.com/rcliao/string-analyzer/internal/store"
)

// QueryResult is the answer to a structured filter query.
type QueryResult struct {
	Data           []string        `json:"data"`
	Count          int             `json:"count"`
	FiltersApplied model.FilterSet `json:"filters_applied"`
}

// NaturalLanguageResult is the answer to a natural-language query.
type NaturalLanguageResult struct {
	Data             []string               `json:"data"`
	Count            int                    `json:"count"`
	InterpretedQuery nlquery.Interpretation `json:"interpreted_query"`
}

// Service owns a store and records metrics for every operation.
type Service struct {
	store   store.Store
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger
}

// New returns a Service over s. A nil m gets a fresh, unexposed registry;
// a nil log discards output.
func New(s store.Store, m *metrics.Metrics, log *zap.SugaredLogger) *Service {
	if m == nil {
		m = metrics.New()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{store: s, metrics: m, logger: log}
}

// Create analyzes and stores value.
func (s *Service) Create(ctx context.Context, value string) (*model.StringRecord, error) {
	rec, err := s.store.Insert(ctx, value)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordsCreated.Inc()
	s.metrics.RecordsStored.Inc()
	logger.FromContext(ctx, s.logger).Debugw("String stored",
		logger.FieldValueID, rec.ID,
	)
	return rec, nil
}

// Get returns the stored record for value.
func (s *Service) Get(ctx context.Context, value string) (*model.StringRecord, error) {
	return s.store.Get(ctx, value)
}

// Delete removes value from the store.
func (s *Service) Delete(ctx context.Context, value string) error {
	if err := s.store.Delete(ctx, value); err != nil {
		return err
	}
	s.metrics.RecordsDeleted.Inc()
	s.metrics.RecordsStored.Dec()
	return nil
}

// Count returns the number of stored strings.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Len(ctx)
}

// Filter validates fs and returns every stored value that matches it.
func (s *Service) Filter(ctx context.Context, fs model.FilterSet) (*QueryResult, error) {
	if err := fs.Validate(); err != nil {
		return nil, err
	}
	sel, err := filter.Select(ctx, s.store, fs)
	if err != nil {
		return nil, errors.Wrap(err, "select")
	}
	s.metrics.Queries.WithLabelValues(metrics.QueryStructured).Inc()
	logger.FromContext(ctx, s.logger).Debugw("Structured query",
		logger.FieldFilters, fs,
		logger.FieldCount, sel.Count,
	)

	return &QueryResult{
		Data:           sel.Data,
		Count:          sel.Count,
		FiltersApplied: fs,
	}, nil
}

// FilterNaturalLanguage translates query and returns every stored value
// matching the resulting filters.
func (s *Service) FilterNaturalLanguage(ctx context.Context, query string) (*NaturalLanguageResult, error) {
	log := logger.FromContext(ctx, s.logger)

	interp, err := nlquery.Translate(query)
	if err != nil {
		kind := errors.KindOf(err)
		s.metrics.TranslationFailures.WithLabelValues(kind.String()).Inc()
		log.Debugw("Query not translated",
			logger.FieldQuery, query,
			logger.FieldErrorKind, kind.String(),
		)
		return nil, err
	}
	log.Debugw("Query translated",
		logger.FieldQuery, query,
		logger.FieldRules, interp.Rules,
	)

	sel, err := filter.Select(ctx, s.store, interp.ParsedFilters)
	if err != nil {
		return nil, errors.Wrap(err, "select")
	}
	s.metrics.Queries.WithLabelValues(metrics.QueryNaturalLanguage).Inc()
	log.Debugw("Natural-language query",
		logger.FieldFilters, interp.ParsedFilters,
		logger.FieldCount, sel.Count,
	)

	return &NaturalLanguageResult{
		Data:             sel.Data,
		Count:            sel.Count,
		InterpretedQuery: *interp,
	}, nil
}
