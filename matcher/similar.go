package matcher

import (
	"context"
	"fmt"
	"sort"

	"github.com/swetharajan7/StellarRec/distance"
	"github.com/swetharajan7/StellarRec/model"
)

// GetSimilar returns the candidates most similar to the given one by cosine
// similarity of content vectors, excluding the query candidate itself.
// When fewer than limit candidates share a descriptor term with the query,
// the tail is padded with zero-similarity candidates in catalog order.
// limit 0 means DefaultSimilarLimit. An index containing only the query
// candidate yields an empty list.
func (e *Engine) GetSimilar(ctx context.Context, candidateID string, limit int) ([]model.SimilarCandidate, error) {
	if limit == 0 {
		limit = DefaultSimilarLimit
	}
	if limit < 0 {
		return nil, &ValidationError{Field: "limit", Value: limit}
	}

	ix := e.idx.Load()
	if ix == nil {
		return nil, ErrNotInitialized
	}

	target, ok := ix.Ordinal(candidateID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, candidateID)
	}

	// Only candidates sharing at least one descriptor term can have nonzero
	// cosine similarity; prune the scan to those.
	shared := ix.SharedTermCandidates(target)
	shared.Remove(uint32(target))

	type scored struct {
		ordinal int
		score   float64
	}
	candidates := make([]scored, 0, shared.GetCardinality())

	queryVec := ix.ContentVector(target)
	it := shared.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Vectors are L2-normalized at build time; dot product is cosine.
		candidates = append(candidates, scored{
			ordinal: i,
			score:   distance.Dot(queryVec, ix.ContentVector(i)),
		})
	}

	// Candidates outside the shared set have exactly zero similarity; they
	// only matter when the shared set cannot fill the limit.
	for i := 0; i < ix.Len() && len(candidates) < limit; i++ {
		if i == target || shared.Contains(uint32(i)) {
			continue
		}
		candidates = append(candidates, scored{ordinal: i})
	}

	// Stable: ties keep original candidate order (bitmap iteration is
	// already ordinal-ascending).
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]model.SimilarCandidate, len(candidates))
	for i, sc := range candidates {
		c := ix.At(sc.ordinal)
		results[i] = model.SimilarCandidate{
			CandidateID:     c.ID,
			Name:            c.Name,
			SimilarityScore: sc.score,
			Programs:        c.Programs,
			Location:        c.Location,
		}
	}

	e.logger.DebugContext(ctx, "similarity search completed",
		"candidate", candidateID, "results", len(results))
	return results, nil
}
