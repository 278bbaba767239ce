package assumptions

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/pension/internal/modules/retirement"
)

type brokenStore struct{}

func (brokenStore) List(context.Context, bool) ([]Profile, error) {
	return nil, errors.New("database is locked")
}

func (brokenStore) GetByName(context.Context, string) (Profile, error) {
	return Profile{}, errors.New("database is locked")
}

func (brokenStore) GetDefault(context.Context) (Profile, error) {
	return Profile{}, errors.New("database is locked")
}

func TestService_CatalogWithoutStore(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	catalog := svc.Catalog(context.Background())
	assert.Equal(t, DefaultProfileName, catalog.DefaultProfile.Name)
	assert.Equal(t, retirement.DefaultRates(), catalog.DefaultProfile.Rates)
	require.Len(t, catalog.Profiles, 3)
	assert.Equal(t, "Conservative", catalog.Profiles[0].Name)
	assert.Len(t, catalog.Explanation, 5)
}

func TestService_CatalogFallsBackOnStoreError(t *testing.T) {
	svc := NewService(brokenStore{}, zerolog.Nop())

	catalog := svc.Catalog(context.Background())
	assert.Equal(t, BuiltinCatalog(), catalog)
}

func TestService_CatalogFromRepository(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	svc := NewService(repo, zerolog.Nop())
	assert.Equal(t, DefaultProfileName, svc.Catalog(ctx).DefaultProfile.Name, "empty table serves built-ins")

	_, err := repo.SeedDefaults(ctx)
	require.NoError(t, err)

	catalog := svc.Catalog(ctx)
	assert.NotEmpty(t, catalog.DefaultProfile.ID, "stored profiles carry ids")
	assert.Len(t, catalog.Profiles, 3)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("empty name selects default", func(t *testing.T) {
		p, err := NewService(nil, zerolog.Nop()).Get(ctx, "  ")
		require.NoError(t, err)
		assert.Equal(t, DefaultProfileName, p.Name)
	})

	t.Run("built-in lookup ignores case", func(t *testing.T) {
		p, err := NewService(nil, zerolog.Nop()).Get(ctx, "CONSERVATIVE")
		require.NoError(t, err)
		assert.Equal(t, 0.035, p.WithdrawalRate)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := NewService(nil, zerolog.Nop()).Get(ctx, "Reckless")
		assert.True(t, errors.Is(err, ErrProfileNotFound))
	})

	t.Run("store failure falls back to built-ins", func(t *testing.T) {
		p, err := NewService(brokenStore{}, zerolog.Nop()).Get(ctx, "Aggressive")
		require.NoError(t, err)
		assert.Equal(t, 0.07, p.GrowthRatePreRetirement)
	})

	t.Run("profile missing from store is not resurrected", func(t *testing.T) {
		repo := newTestRepository(t)
		_, err := repo.SeedDefaults(ctx)
		require.NoError(t, err)

		aggressive, err := repo.GetByName(ctx, "Aggressive")
		require.NoError(t, err)
		aggressive.IsActive = false
		_, err = repo.Upsert(ctx, aggressive)
		require.NoError(t, err)

		_, err = NewService(repo, zerolog.Nop()).Get(ctx, "Aggressive")
		assert.True(t, errors.Is(err, ErrProfileNotFound))
	})
}

func TestService_ResolveRates(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	rates, err := svc.ResolveRates(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, retirement.DefaultRates(), rates)

	var resolver retirement.RatesResolver = svc
	_, err = resolver.ResolveRates(context.Background(), "nope")
	assert.Error(t, err)
}
