package cache

import "time"

// TTL constants for cached data.
// These are added to time.Now() when storing to calculate the expiry.
const (
	// TTLAnalysis bounds how long a computed analysis is served from cache.
	// Analyses are deterministic so this only limits cache growth.
	TTLAnalysis = 5 * time.Minute

	// TTLAssumptionCatalog covers the assumption profile listing.
	TTLAssumptionCatalog = time.Hour
)
