package retirement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/pension/internal/cache"
)

type stubResolver struct {
	rates Rates
	err   error
	calls []string
}

func (s *stubResolver) ResolveRates(_ context.Context, name string) (Rates, error) {
	s.calls = append(s.calls, name)
	return s.rates, s.err
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

func (failingStore) Ping(context.Context) error { return errors.New("store down") }

func floatPtr(v float64) *float64 { return &v }

func TestOverrides_Apply(t *testing.T) {
	base := DefaultRates()

	assert.Equal(t, base, Overrides{}.Apply(base))

	got := Overrides{WithdrawalRate: floatPtr(0.035), TaxRate: floatPtr(0)}.Apply(base)
	assert.Equal(t, 0.035, got.WithdrawalRate)
	assert.Equal(t, 0.0, got.TaxRate)
	assert.Equal(t, base.GrowthRatePreRetirement, got.GrowthRatePreRetirement)
	assert.Equal(t, base.InflationRate, got.InflationRate)
}

func TestService_ResolveRates(t *testing.T) {
	aggressive := Rates{WithdrawalRate: 0.045, GrowthRatePreRetirement: 0.07, GrowthRatePostRetirement: 0.04, InflationRate: 0.03, TaxRate: 0.35}
	resolver := &stubResolver{rates: aggressive}
	svc := NewService(resolver, nil, 0, nil, zerolog.Nop())

	rates, err := svc.ResolveRates(context.Background(), Request{
		AssumptionProfile: "Aggressive",
		Overrides:         Overrides{InflationRate: floatPtr(0.025)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Aggressive"}, resolver.calls)
	assert.Equal(t, 0.07, rates.GrowthRatePreRetirement)
	assert.Equal(t, 0.025, rates.InflationRate)

	t.Run("no resolver uses defaults", func(t *testing.T) {
		plain := NewService(nil, nil, 0, nil, zerolog.Nop())
		rates, err := plain.ResolveRates(context.Background(), Request{})
		require.NoError(t, err)
		assert.Equal(t, DefaultRates(), rates)
	})

	t.Run("resolver errors propagate", func(t *testing.T) {
		missing := errors.New("no such profile")
		failing := NewService(&stubResolver{err: missing}, nil, 0, nil, zerolog.Nop())
		_, err := failing.Analyze(context.Background(), Request{Profile: workedProfile(), AssumptionProfile: "nope"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, missing))
	})
}

func TestService_AnalyzeCachesResults(t *testing.T) {
	store := cache.NewMemoryStore()
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewService(nil, store, time.Minute, metrics, zerolog.Nop())
	ctx := context.Background()
	req := Request{Profile: workedProfile()}

	first, err := svc.Analyze(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	second, err := svc.Analyze(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.analyses.WithLabelValues("high")))

	direct, err := NewCalculator(DefaultRates()).Analyze(workedProfile())
	require.NoError(t, err)
	assert.Equal(t, direct, second, "cached result matches a fresh computation")
}

func TestService_CacheKeyIncludesLanguageAndRates(t *testing.T) {
	store := cache.NewMemoryStore()
	svc := NewService(nil, store, time.Minute, nil, zerolog.Nop())
	ctx := context.Background()

	english, err := svc.Analyze(ctx, Request{Profile: workedProfile()})
	require.NoError(t, err)
	spanish, err := svc.Analyze(ctx, Request{Profile: workedProfile(), Language: "es"})
	require.NoError(t, err)
	_, err = svc.Analyze(ctx, Request{Profile: workedProfile(), Overrides: Overrides{WithdrawalRate: floatPtr(0.035)}})
	require.NoError(t, err)

	assert.Equal(t, 3, store.Len())
	assert.NotEqual(t, english.Recommendations, spanish.Recommendations)
	assert.Equal(t, english.Projections, spanish.Projections)
}

func TestService_CacheFailuresDoNotFailRequests(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewService(nil, failingStore{}, time.Minute, metrics, zerolog.Nop())

	result, err := svc.Analyze(context.Background(), Request{Profile: workedProfile()})
	require.NoError(t, err)
	assert.Equal(t, 1500000.0, result.Projections.RequiredCorpus)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheLookups.WithLabelValues("error")))
}

func TestService_CorruptCacheEntryIsRecomputed(t *testing.T) {
	store := cache.NewMemoryStore()
	svc := NewService(nil, store, time.Minute, nil, zerolog.Nop())
	ctx := context.Background()

	key := cacheKey(workedProfile(), DefaultRates(), MatchLanguage(""))
	require.NoError(t, store.Set(ctx, key, []byte{0xc1}, time.Minute))

	result, err := svc.Analyze(ctx, Request{Profile: workedProfile()})
	require.NoError(t, err)
	assert.Equal(t, 35, result.Projections.YearsToRetirement)
}

func TestService_EngineFailuresAreCounted(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewService(nil, nil, 0, metrics, zerolog.Nop())

	_, err := svc.Analyze(context.Background(), Request{
		Profile:   workedProfile(),
		Overrides: Overrides{WithdrawalRate: floatPtr(0)},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidWithdrawalRate))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.failures.WithLabelValues("invalid_withdrawal_rate")))
}

func TestCodec_RoundTrip(t *testing.T) {
	result, err := NewCalculator(DefaultRates()).Analyze(workedProfile())
	require.NoError(t, err)

	data, err := encodeResult(result)
	require.NoError(t, err)

	decoded, err := decodeResult(data)
	require.NoError(t, err)
	assert.Equal(t, result, decoded)

	_, err = decodeResult([]byte{0xc1})
	assert.Error(t, err)
}
