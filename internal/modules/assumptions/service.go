package assumptions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/modules/retirement"
)

// ProfileStore is the read side of the repository used by the service.
type ProfileStore interface {
	List(ctx context.Context, activeOnly bool) ([]Profile, error)
	GetByName(ctx context.Context, name string) (Profile, error)
	GetDefault(ctx context.Context) (Profile, error)
}

// Service serves assumption profiles from the database, falling back to the
// built-in catalog when the store is missing or failing.
type Service struct {
	store ProfileStore
	log   zerolog.Logger
}

// NewService creates a new assumptions service. store may be nil.
func NewService(store ProfileStore, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With().Str("component", "assumptions_service").Logger(),
	}
}

// Catalog returns the default profile, the alternatives and the field explanations.
func (s *Service) Catalog(ctx context.Context) Catalog {
	if s.store == nil {
		return BuiltinCatalog()
	}

	profiles, err := s.store.List(ctx, true)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to list assumption profiles, serving built-in catalog")
		return BuiltinCatalog()
	}
	if len(profiles) == 0 {
		return BuiltinCatalog()
	}
	return newCatalog(profiles)
}

// Get returns the named profile; an empty name selects the default profile.
// Built-in profiles are only consulted when the store is absent or erroring.
func (s *Service) Get(ctx context.Context, name string) (Profile, error) {
	name = strings.TrimSpace(name)

	if s.store != nil {
		var (
			p   Profile
			err error
		)
		if name == "" {
			p, err = s.store.GetDefault(ctx)
		} else {
			p, err = s.store.GetByName(ctx, name)
		}
		if err == nil || errors.Is(err, ErrProfileNotFound) {
			return p, err
		}
		s.log.Warn().Err(err).Str("profile", name).Msg("Assumption store lookup failed, using built-in profiles")
	}

	return builtinProfile(name)
}

// ResolveRates returns the rates of the named profile.
func (s *Service) ResolveRates(ctx context.Context, name string) (retirement.Rates, error) {
	p, err := s.Get(ctx, name)
	if err != nil {
		return retirement.Rates{}, err
	}
	return p.Rates, nil
}

func builtinProfile(name string) (Profile, error) {
	for _, p := range BuiltinProfiles() {
		if (name == "" && p.IsDefault) || strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}
