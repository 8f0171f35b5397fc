package stellarrec

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/swetharajan7/StellarRec/cache"
	"github.com/swetharajan7/StellarRec/matcher"
	"github.com/swetharajan7/StellarRec/resource"
	"github.com/swetharajan7/StellarRec/sysinfo"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector

	// Matching.
	weights       matcher.Weights
	cacheStore    cache.Cache
	codec         cache.Codec
	parallelism   int
	regionAliases map[string][]string

	// Resources.
	systemInfo          sysinfo.Provider
	admissionBudgetMB   int64
	totalBudgetMB       int64
	loadRateLimit       rate.Limit
	loadRateBurst       int
	resourceConstructor resource.Constructor

	// Idle eviction.
	evictionInterval time.Duration
	evictionMaxIdle  time.Duration
}

// Option configures Service constructor behavior.
type Option func(*options)

// WithLogger configures structured logging for the service and its
// components. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures operational metrics collection.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithWeights overrides the default factor weights. The weight set must sum
// to 1.0; New fails otherwise.
func WithWeights(w matcher.Weights) Option {
	return func(o *options) {
		o.weights = w
	}
}

// WithCache enables match-result memoization through the given cache
// facade. Without a cache every request is scored from scratch.
func WithCache(c cache.Cache) Option {
	return func(o *options) {
		o.cacheStore = c
	}
}

// WithCodec configures the codec used for cached payloads.
//
// If nil is passed, cache.Default is used.
func WithCodec(c cache.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = cache.Default
		}
		o.codec = c
	}
}

// WithParallelism bounds the scoring fan-out per request.
// Defaults to GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithRegionAliases replaces the broad-region alias table used for partial
// location credit.
func WithRegionAliases(aliases map[string][]string) Option {
	return func(o *options) {
		o.regionAliases = aliases
	}
}

// WithSystemInfo injects the memory stats provider used for resource
// admission. Defaults to the platform provider.
func WithSystemInfo(p sysinfo.Provider) Option {
	return func(o *options) {
		o.systemInfo = p
	}
}

// WithAdmissionBudgetMB sets the available-memory headroom a resource load
// must see before construction is attempted.
func WithAdmissionBudgetMB(mb int64) Option {
	return func(o *options) {
		o.admissionBudgetMB = mb
	}
}

// WithTotalBudgetMB caps the summed memory estimates of loaded resources.
// Zero (the default) disables the cap.
func WithTotalBudgetMB(mb int64) Option {
	return func(o *options) {
		o.totalBudgetMB = mb
	}
}

// WithLoadRateLimit throttles resource construction attempts.
func WithLoadRateLimit(limit rate.Limit, burst int) Option {
	return func(o *options) {
		o.loadRateLimit = limit
		o.loadRateBurst = burst
	}
}

// WithResourceConstructor overrides resource construction, for wiring real
// scoring backends or test doubles.
func WithResourceConstructor(c resource.Constructor) Option {
	return func(o *options) {
		o.resourceConstructor = c
	}
}

// WithIdleEviction starts a background sweep that unloads resources idle
// for longer than maxIdle, checking every interval. Disabled by default;
// the sweep stops when the service is closed.
func WithIdleEviction(interval, maxIdle time.Duration) Option {
	return func(o *options) {
		o.evictionInterval = interval
		o.evictionMaxIdle = maxIdle
	}
}

func defaultOptions() *options {
	return &options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		weights:          matcher.DefaultWeights(),
		codec:            cache.Default,
	}
}
