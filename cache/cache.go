package cache

import (
	"context"
	"time"
)

// Cache is the consumed key-value store contract.
// Implementations must be safe for concurrent use. Callers are expected to
// absorb errors: a failed read is a miss, a failed write is dropped.
type Cache interface {
	// Get returns a cached value. ok=false if the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// SetWithTTL stores a value that expires after ttl.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key.
	Delete(ctx context.Context, key string) error

	// DeleteByPattern removes every key with the given prefix and returns
	// the number of keys removed.
	DeleteByPattern(ctx context.Context, prefix string) (int, error)

	// TTL returns the remaining lifetime of a key.
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// TTLs per key namespace.
const (
	MatchesTTL    = time.Hour
	EssayTTL      = 30 * time.Minute
	PredictionTTL = 2 * time.Hour
)

// MatchesKey returns the key for a memoized match result set.
func MatchesKey(studentID, requestHash string) string {
	return "matches:" + studentID + ":" + requestHash
}

// MatchesPrefix returns the prefix covering all memoized results for a
// student, for use with DeleteByPattern.
func MatchesPrefix(studentID string) string {
	return "matches:" + studentID + ":"
}

// EssayKey returns the key for a cached essay analysis.
func EssayKey(contentHash string) string {
	return "essay:" + contentHash
}

// PredictionKey returns the key for a cached admission prediction.
func PredictionKey(studentID, candidateID string) string {
	return "prediction:" + studentID + ":" + candidateID
}
