package matcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/swetharajan7/StellarRec/cache"
	"github.com/swetharajan7/StellarRec/model"
)

// memoRequest is the canonical shape hashed into the cache key. Any change
// to profile, limit or filters produces a distinct key.
type memoRequest struct {
	Profile    model.StudentProfile `json:"profile"`
	MaxResults int                  `json:"maxResults"`
	Filters    *Filters             `json:"filters,omitempty"`
}

// memoKey returns the cache key for a request, or "" when memoization does
// not apply (no cache configured or anonymous profile).
func (e *Engine) memoKey(profile *model.StudentProfile, maxResults int, filters *Filters) string {
	if e.cache == nil || profile.ID == "" {
		return ""
	}
	raw, err := json.Marshal(memoRequest{Profile: *profile, MaxResults: maxResults, Filters: filters})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return cache.MatchesKey(profile.ID, hex.EncodeToString(sum[:]))
}

// memoGet returns memoized results for the request. Cache failures are
// logged and reported as a miss; a miss is indistinguishable from absence.
func (e *Engine) memoGet(ctx context.Context, profile *model.StudentProfile, maxResults int, filters *Filters) ([]model.MatchResult, bool) {
	key := e.memoKey(profile, maxResults, filters)
	if key == "" {
		return nil, false
	}

	data, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var results []model.MatchResult
	if err := e.codec.Unmarshal(data, &results); err != nil {
		e.logger.WarnContext(ctx, "cached match payload undecodable", "key", key, "error", err)
		return nil, false
	}
	return results, true
}

// memoSet stores results for the request. A failed write never fails the
// originating request.
func (e *Engine) memoSet(ctx context.Context, profile *model.StudentProfile, maxResults int, filters *Filters, results []model.MatchResult) {
	key := e.memoKey(profile, maxResults, filters)
	if key == "" {
		return
	}

	data, err := e.codec.Marshal(results)
	if err != nil {
		e.logger.WarnContext(ctx, "match payload encode failed", "key", key, "error", err)
		return
	}
	if err := e.cache.SetWithTTL(ctx, key, data, cache.MatchesTTL); err != nil {
		e.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

// InvalidateStudent drops every memoized result set for a student.
// Returns the number of entries removed; failures are absorbed.
func (e *Engine) InvalidateStudent(ctx context.Context, studentID string) int {
	if e.cache == nil || studentID == "" {
		return 0
	}
	n, err := e.cache.DeleteByPattern(ctx, cache.MatchesPrefix(studentID))
	if err != nil {
		e.logger.WarnContext(ctx, "cache invalidation failed", "student", studentID, "error", err)
		return 0
	}
	return n
}
