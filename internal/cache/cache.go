package cache

import "time"

// Cache is a minimal key-value cache API with optional TTL per entry.
// Implementations must be safe for concurrent use; the AI gateway reads and
// writes entries from background refinement goroutines.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key K) (V, bool)

	// Set stores the value with an optional TTL. If ttl <= 0, the entry does not expire.
	Set(key K, value V, ttl time.Duration)

	// Delete removes a key if present.
	Delete(key K)

	// Len returns the number of non-expired items currently stored.
	Len() int

	// Clear removes all entries.
	Clear()

	// PurgeExpired scans and removes expired entries.
	PurgeExpired()
}
