package retirement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/cache"
)

// RatesResolver looks up the base rates of a named assumption profile.
// An empty name selects the default profile.
type RatesResolver interface {
	ResolveRates(ctx context.Context, name string) (Rates, error)
}

// Request is one analysis request after boundary validation.
type Request struct {
	Profile           Profile
	AssumptionProfile string
	Overrides         Overrides
	Language          string
}

// Service runs analyses for API and CLI callers, building a fresh Calculator
// per request and caching results.
type Service struct {
	resolver RatesResolver
	cache    cache.Store
	cacheTTL time.Duration
	metrics  *Metrics
	log      zerolog.Logger
}

// NewService creates a new analysis service.
// resolver and store may be nil; without a resolver the default rates are used.
func NewService(resolver RatesResolver, store cache.Store, cacheTTL time.Duration, metrics *Metrics, log zerolog.Logger) *Service {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if cacheTTL <= 0 {
		cacheTTL = cache.TTLAnalysis
	}
	return &Service{
		resolver: resolver,
		cache:    store,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		log:      log.With().Str("component", "retirement_service").Logger(),
	}
}

// ResolveRates returns the effective rates for a request.
func (s *Service) ResolveRates(ctx context.Context, req Request) (Rates, error) {
	base := DefaultRates()
	if s.resolver != nil {
		resolved, err := s.resolver.ResolveRates(ctx, req.AssumptionProfile)
		if err != nil {
			return Rates{}, err
		}
		base = resolved
	}
	return req.Overrides.Apply(base), nil
}

// Analyze resolves the rates for req and returns its analysis, from cache when possible.
// Cache failures are logged and never fail the request.
func (s *Service) Analyze(ctx context.Context, req Request) (AnalysisResult, error) {
	rates, err := s.ResolveRates(ctx, req)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("failed to resolve assumptions: %w", err)
	}

	tag := MatchLanguage(req.Language)
	key := cacheKey(req.Profile, rates, tag)

	if cached, ok := s.lookup(ctx, key); ok {
		return cached, nil
	}

	result, err := NewCalculator(rates).AnalyzeLocalized(req.Profile, tag)
	if err != nil {
		s.metrics.observeFailure(failureReason(err))
		return AnalysisResult{}, err
	}

	s.metrics.observeAnalysis(result.Status.UrgencyLevel)
	s.store(ctx, key, result)

	s.log.Debug().
		Int("years_to_retirement", result.Projections.YearsToRetirement).
		Bool("on_track", result.Status.IsOnTrack).
		Str("urgency", string(result.Status.UrgencyLevel)).
		Str("language", tag.String()).
		Msg("Analysis computed")

	return result, nil
}

func (s *Service) lookup(ctx context.Context, key string) (AnalysisResult, bool) {
	if s.cache == nil {
		return AnalysisResult{}, false
	}

	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Analysis cache lookup failed")
		s.metrics.observeCache("error")
		return AnalysisResult{}, false
	}
	if !found {
		s.metrics.observeCache("miss")
		return AnalysisResult{}, false
	}

	result, err := decodeResult(data)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		s.metrics.observeCache("error")
		return AnalysisResult{}, false
	}

	s.metrics.observeCache("hit")
	return result, true
}

func (s *Service) store(ctx context.Context, key string, result AnalysisResult) {
	if s.cache == nil {
		return
	}

	data, err := encodeResult(result)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to encode analysis for cache")
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Failed to cache analysis")
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidWithdrawalRate):
		return "invalid_withdrawal_rate"
	case errors.Is(err, ErrInvalidHorizon):
		return "invalid_horizon"
	case errors.Is(err, ErrNonFiniteResult):
		return "non_finite"
	default:
		return "other"
	}
}
