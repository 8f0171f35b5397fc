package matcher

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/swetharajan7/StellarRec/cache"
	"github.com/swetharajan7/StellarRec/index"
	"github.com/swetharajan7/StellarRec/model"
)

// Result-set limits.
const (
	DefaultMaxResults = 20
	MaxResults        = 100

	DefaultSimilarLimit = 5
)

// Engine computes ranked matches over a published candidate index.
// Safe for concurrent use; SetIndex atomically swaps the index so readers
// never observe a partially built one.
type Engine struct {
	idx atomic.Pointer[index.Index]

	weights       Weights
	cache         cache.Cache // nil disables memoization
	codec         cache.Codec
	logger        *slog.Logger
	parallelism   int
	regionAliases map[string][]string
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the default factor weights.
// The weight set is validated in New.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithCache enables result memoization through the given cache facade.
func WithCache(c cache.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithCodec overrides the cache serialization codec.
func WithCodec(c cache.Codec) Option {
	return func(e *Engine) {
		if c != nil {
			e.codec = c
		}
	}
}

// WithLogger sets the structured logger. Nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithParallelism bounds the scoring fan-out. Defaults to GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithRegionAliases replaces the broad-region alias table used for partial
// location credit. Keys are lowercase country names, values the lowercase
// preference tokens that name that country as a region.
func WithRegionAliases(aliases map[string][]string) Option {
	return func(e *Engine) { e.regionAliases = aliases }
}

// New creates an Engine. It fails only on an invalid weight set.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		weights:     DefaultWeights(),
		codec:       cache.Default,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		parallelism: runtime.GOMAXPROCS(0),
		regionAliases: map[string][]string{
			"usa": {"usa", "united states"},
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if err := e.weights.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Weights returns the configured factor weights.
func (e *Engine) Weights() Weights { return e.weights }

// SetIndex publishes a fully built index. Readers started before the swap
// keep scoring against the previous index.
func (e *Engine) SetIndex(ix *index.Index) {
	e.idx.Store(ix)
}

// Index returns the currently published index, or nil.
func (e *Engine) Index() *index.Index {
	return e.idx.Load()
}

// FindMatches scores every candidate against the profile, filters, ranks
// and truncates to maxResults. maxResults 0 means DefaultMaxResults; values
// outside [1,MaxResults] are rejected. A filter that eliminates everything
// yields an empty list, not an error.
func (e *Engine) FindMatches(ctx context.Context, profile model.StudentProfile, maxResults int, filters *Filters) ([]model.MatchResult, error) {
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < 1 || maxResults > MaxResults {
		return nil, &ValidationError{Field: "maxResults", Value: maxResults}
	}
	if profile.GPA != nil && (*profile.GPA < 0 || *profile.GPA > 4) {
		return nil, &ValidationError{Field: "gpa", Value: *profile.GPA}
	}

	ix := e.idx.Load()
	if ix == nil {
		return nil, ErrNotInitialized
	}

	if cached, ok := e.memoGet(ctx, &profile, maxResults, filters); ok {
		e.logger.DebugContext(ctx, "match results served from cache",
			"student", profile.ID, "results", len(cached))
		return cached, nil
	}

	scored, err := e.scoreAll(ctx, ix, &profile)
	if err != nil {
		return nil, err
	}

	results := make([]model.MatchResult, 0, len(scored))
	for i := range scored {
		if filters.allow(&scored[i]) {
			results = append(results, scored[i])
		}
	}

	// Stable: ties keep original candidate order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	e.memoSet(ctx, &profile, maxResults, filters, results)

	e.logger.DebugContext(ctx, "match results computed",
		"student", profile.ID, "candidates", ix.Len(), "results", len(results))
	return results, nil
}

// scoreAll computes a MatchResult per candidate, fanning out across the
// configured parallelism. Cancellation surfaces as a request failure.
func (e *Engine) scoreAll(ctx context.Context, ix *index.Index, profile *model.StudentProfile) ([]model.MatchResult, error) {
	results := make([]model.MatchResult, ix.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i := 0; i < ix.Len(); i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.scoreOne(profile, ix.At(i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// scoreOne evaluates the five factors for one candidate and assembles the
// full match record.
func (e *Engine) scoreOne(profile *model.StudentProfile, c *model.Candidate) model.MatchResult {
	f := factorSet{
		Academic:  academicFit(profile, c),
		Interest:  interestAlignment(profile, c),
		Location:  locationPreference(profile, c, e.regionAliases),
		Financial: financialFit(profile, c),
		Cultural:  culturalFit(c),
	}

	matchPct := clamp(f.weighted(e.weights)*100, 0, 100)

	return model.MatchResult{
		CandidateID:     c.ID,
		CandidateName:   c.Name,
		MatchPercentage: matchPct,
		Confidence:      confidence(profile, c, f.slice()),
		Category:        categorize(matchPct, c),
		Factors:         breakdown(f, e.weights),
		Reasoning:       reasoning(f),
		Programs:        c.Programs,
		EstimatedCost:   estimateCost(profile, c),
	}
}
