// Package stellarrec provides a university matching engine for Go.
//
// StellarRec scores an institution catalog against a student profile and
// returns ranked, explained matches, with production-ready features
// including:
//
//   - Weighted five-factor scoring: academic, interest, location, financial, cultural
//   - Per-match confidence, safety/target/reach categorization and cost estimates
//   - Content similarity search over TF-IDF candidate vectors
//   - Atomic index publication: rebuilds never disturb in-flight requests
//   - Result memoization behind a pluggable cache facade
//   - Memory-budgeted scoring resource management with leases and idle eviction
//
// # Quick Start
//
// Build an index and find matches:
//
//	ctx := context.Background()
//	svc, err := stellarrec.New()
//	if err != nil {
//	    panic(err)
//	}
//	defer svc.Close()
//
//	if err := svc.BuildIndex(ctx, catalog); err != nil {
//	    panic(err)
//	}
//
//	gpa := 3.8
//	matches, err := svc.FindMatches(ctx, model.StudentProfile{
//	    ID:                "student-1",
//	    GPA:               &gpa,
//	    AcademicInterests: []string{"computer science"},
//	}, 20, nil)
//
// Manage scoring backends under a memory budget:
//
//	svc, err := stellarrec.New(
//	    stellarrec.WithTotalBudgetMB(4096),
//	    stellarrec.WithIdleEviction(time.Minute, 30*time.Minute),
//	)
//	err = svc.LoadResource(ctx, "admission-predictor", resource.GradientBoostingConfig{
//	    Features: []string{"gpa", "sat"},
//	    Target:   "admitted",
//	})
package stellarrec

import (
	"context"
	"time"

	"github.com/swetharajan7/StellarRec/index"
	"github.com/swetharajan7/StellarRec/matcher"
	"github.com/swetharajan7/StellarRec/model"
	"github.com/swetharajan7/StellarRec/resource"
	"github.com/swetharajan7/StellarRec/sysinfo"
)

// Filters restricts a match result set. See matcher.Filters.
type Filters = matcher.Filters

// Service is the composed matching engine and resource manager.
// Safe for concurrent use.
type Service struct {
	logger  *Logger
	metrics MetricsCollector

	engine    *matcher.Engine
	resources *resource.Manager

	stopEviction context.CancelFunc
	evictionDone chan struct{}
}

// New creates a Service. It fails only on an invalid weight set.
func New(opts ...Option) (*Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	engineOpts := []matcher.Option{
		matcher.WithWeights(o.weights),
		matcher.WithLogger(o.logger.Logger),
		matcher.WithCodec(o.codec),
		matcher.WithParallelism(o.parallelism),
	}
	if o.cacheStore != nil {
		engineOpts = append(engineOpts, matcher.WithCache(o.cacheStore))
	}
	if o.regionAliases != nil {
		engineOpts = append(engineOpts, matcher.WithRegionAliases(o.regionAliases))
	}
	engine, err := matcher.New(engineOpts...)
	if err != nil {
		return nil, err
	}

	managerOpts := []resource.ManagerOption{
		resource.WithLogger(o.logger.Logger),
		resource.WithAdmissionBudgetMB(o.admissionBudgetMB),
		resource.WithTotalBudgetMB(o.totalBudgetMB),
		resource.WithConstructor(o.resourceConstructor),
		resource.WithSystemInfo(o.systemInfo),
	}
	if o.loadRateLimit > 0 {
		managerOpts = append(managerOpts, resource.WithLoadRateLimit(o.loadRateLimit, o.loadRateBurst))
	}

	s := &Service{
		logger:    o.logger,
		metrics:   o.metricsCollector,
		engine:    engine,
		resources: resource.NewManager(managerOpts...),
	}

	if o.evictionInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		s.stopEviction = cancel
		s.evictionDone = make(chan struct{})
		go s.evictionLoop(ctx, o.evictionInterval, o.evictionMaxIdle)
	}

	return s, nil
}

// Close stops the eviction loop and unloads every resource.
// The Service must not be used after Close.
func (s *Service) Close() error {
	if s.stopEviction != nil {
		s.stopEviction()
		<-s.evictionDone
		s.stopEviction = nil
	}
	s.resources.UnloadAll()
	return nil
}

// BuildIndex derives a fresh candidate index from the catalog and publishes
// it atomically. Requests in flight keep scoring against the previous index.
func (s *Service) BuildIndex(ctx context.Context, candidates []model.Candidate) error {
	start := time.Now()
	ix, err := index.Build(ctx, candidates)
	if err == nil {
		s.engine.SetIndex(ix)
	}
	s.metrics.RecordIndexBuild(len(candidates), time.Since(start), err)
	s.logger.LogIndexBuild(ctx, len(candidates), err)
	return err
}

// FindMatches scores the catalog against the profile and returns ranked
// matches. maxResults 0 means the default limit; a nil filters allows
// everything.
func (s *Service) FindMatches(ctx context.Context, profile model.StudentProfile, maxResults int, filters *Filters) ([]model.MatchResult, error) {
	start := time.Now()
	results, err := s.engine.FindMatches(ctx, profile, maxResults, filters)
	err = translateError(err)
	s.metrics.RecordMatch(len(results), time.Since(start), err)
	s.logger.LogMatch(ctx, profile.ID, len(results), err)
	return results, err
}

// GetSimilar returns the candidates most similar to the given one by
// content similarity. limit 0 means the default limit.
func (s *Service) GetSimilar(ctx context.Context, candidateID string, limit int) ([]model.SimilarCandidate, error) {
	start := time.Now()
	results, err := s.engine.GetSimilar(ctx, candidateID, limit)
	err = translateError(err)
	s.metrics.RecordSimilar(len(results), time.Since(start), err)
	s.logger.LogSimilar(ctx, candidateID, len(results), err)
	return results, err
}

// InvalidateStudent drops every memoized result set for a student and
// returns the number of entries removed.
func (s *Service) InvalidateStudent(ctx context.Context, studentID string) int {
	return s.engine.InvalidateStudent(ctx, studentID)
}

// LoadResource constructs and registers a scoring resource under a unique
// name, subject to the memory admission policy.
func (s *Service) LoadResource(ctx context.Context, name string, cfg resource.Config) error {
	start := time.Now()
	err := translateError(s.resources.Load(ctx, name, cfg))
	s.metrics.RecordResourceLoad(time.Since(start), err)
	s.logger.LogResourceLoad(ctx, name, err)
	return err
}

// AcquireResource returns a loaded resource under a usage lease. Callers
// must invoke the returned release function when done; a leased resource is
// never idle-evicted.
func (s *Service) AcquireResource(name string) (resource.Resource, func(), error) {
	res, release, err := s.resources.Acquire(name)
	return res, release, translateError(err)
}

// UnloadResource removes a resource and releases its budget slot.
func (s *Service) UnloadResource(name string) error {
	return translateError(s.resources.Unload(name))
}

// ReloadResource unloads a resource and loads it again with its stored
// config.
func (s *Service) ReloadResource(ctx context.Context, name string) error {
	return translateError(s.resources.Reload(ctx, name))
}

// ResourceStatus returns a snapshot of every loaded resource.
func (s *Service) ResourceStatus() map[string]resource.Status {
	return s.resources.Status()
}

// EvictIdleResources unloads every unleased resource idle for longer than
// maxIdle and returns the names evicted.
func (s *Service) EvictIdleResources(maxIdle time.Duration) []string {
	evicted := s.resources.EvictIdle(maxIdle)
	if len(evicted) > 0 {
		s.metrics.RecordEviction(len(evicted))
	}
	return evicted
}

// MemoryUsage reports current system memory stats.
func (s *Service) MemoryUsage() (sysinfo.Stats, error) {
	return s.resources.MemoryUsage()
}

func (s *Service) evictionLoop(ctx context.Context, interval, maxIdle time.Duration) {
	defer close(s.evictionDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictIdleResources(maxIdle)
		}
	}
}
