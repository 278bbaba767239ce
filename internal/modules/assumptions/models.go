// Package assumptions manages the named rate assumption profiles offered to
// analysis clients: a built-in catalog seeded into the pension database and
// the lookups used to resolve a request's base rates.
package assumptions

import (
	"errors"

	"github.com/aristath/pension/internal/modules/retirement"
)

// ErrProfileNotFound is returned when no active profile has the requested name.
var ErrProfileNotFound = errors.New("assumption profile not found")

// RiskProfile classifies how optimistic a profile's rates are.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// Profile is a named, complete set of rate assumptions.
type Profile struct {
	ID          string      `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	RiskProfile RiskProfile `json:"risk_profile"`
	IsDefault   bool        `json:"is_default"`
	IsActive    bool        `json:"is_active"`
	retirement.Rates
	CreatedAt int64 `json:"created_at,omitempty"` // Unix seconds, zero for unsaved profiles
	UpdatedAt int64 `json:"updated_at,omitempty"`
}

// Catalog is the response body of the assumptions listing.
type Catalog struct {
	DefaultProfile Profile           `json:"default_profile"`
	Profiles       []Profile         `json:"profiles"`
	Explanation    map[string]string `json:"explanation"`
}
