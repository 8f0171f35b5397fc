package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/swetharajan7/StellarRec/sysinfo"
)

// DefaultAdmissionBudgetMB is the system headroom that must remain
// available for a new resource to be admitted.
const DefaultAdmissionBudgetMB = 2048

// Manager owns named scoring resources: admission-gated construction,
// usage accounting, leases and idle eviction. Safe for concurrent use.
type Manager struct {
	logger            *slog.Logger
	sys               sysinfo.Provider
	admissionBudgetMB int64
	memGate           *semaphore.Weighted // nil if no total budget configured
	limiter           *rate.Limiter       // nil if construction is not rate limited
	construct         Constructor

	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	res      Resource
	cfg      Config
	memMB    int64
	loadedAt time.Time

	mu       sync.Mutex
	lastUsed time.Time
	usage    uint64
	leases   int
}

// Status is a point-in-time view of one loaded resource.
type Status struct {
	Kind              Kind      `json:"kind"`
	LoadedAt          time.Time `json:"loadedAt"`
	LastUsedAt        time.Time `json:"lastUsedAt"`
	UsageCount        uint64    `json:"usageCount"`
	EstimatedMemoryMB int64     `json:"estimatedMemoryMB"`
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the structured logger. Nil disables logging.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSystemInfo injects the memory stats provider used for admission.
func WithSystemInfo(p sysinfo.Provider) ManagerOption {
	return func(m *Manager) {
		if p != nil {
			m.sys = p
		}
	}
}

// WithAdmissionBudgetMB sets the available-memory headroom a load must see
// before construction is attempted.
func WithAdmissionBudgetMB(mb int64) ManagerOption {
	return func(m *Manager) {
		if mb > 0 {
			m.admissionBudgetMB = mb
		}
	}
}

// WithTotalBudgetMB caps the summed memory estimates of loaded resources.
// Zero (the default) disables the cap.
func WithTotalBudgetMB(mb int64) ManagerOption {
	return func(m *Manager) {
		if mb > 0 {
			m.memGate = semaphore.NewWeighted(mb)
		}
	}
}

// WithLoadRateLimit throttles construction attempts. Guards against reload
// storms; disabled by default.
func WithLoadRateLimit(limit rate.Limit, burst int) ManagerOption {
	return func(m *Manager) {
		m.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithConstructor overrides resource construction.
func WithConstructor(c Constructor) ManagerOption {
	return func(m *Manager) {
		if c != nil {
			m.construct = c
		}
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		sys:               sysinfo.System(),
		admissionBudgetMB: DefaultAdmissionBudgetMB,
		construct:         defaultConstructor,
		entries:           make(map[string]*entry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Load constructs and registers a resource under a unique name.
// Concurrent loads for the same name collapse into one construction; every
// caller observes that construction's outcome. Construction failures leave
// manager state unchanged.
func (m *Manager) Load(ctx context.Context, name string, cfg Config) error {
	if cfg == nil {
		return ErrUnsupportedKind
	}
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	_, err, _ := m.group.Do(name, func() (any, error) {
		return nil, m.doLoad(ctx, name, cfg)
	})
	return err
}

func (m *Manager) doLoad(ctx context.Context, name string, cfg Config) error {
	m.mu.RLock()
	_, exists := m.entries[name]
	m.mu.RUnlock()
	if exists {
		return fmt.Errorf("%w: %q", ErrAlreadyLoaded, name)
	}

	if err := m.admit(ctx, name, cfg); err != nil {
		return err
	}

	memMB := cfg.MemoryEstimateMB()
	res, err := m.construct(ctx, name, cfg)
	if err != nil {
		if m.memGate != nil {
			m.memGate.Release(memMB)
		}
		if errors.Is(err, ErrUnsupportedKind) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrConstructionFailed, err)
	}

	now := time.Now()
	m.mu.Lock()
	m.entries[name] = &entry{
		res:      res,
		cfg:      cfg,
		memMB:    memMB,
		loadedAt: now,
		lastUsed: now,
	}
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "resource loaded",
		"name", name, "kind", cfg.Kind(), "memory_mb", memMB)
	return nil
}

// admit enforces the memory admission policy: system headroom must exceed
// the configured budget, and the total-budget gate (if any) must have room
// for the estimate. On success the estimate is already charged to the gate.
func (m *Manager) admit(ctx context.Context, name string, cfg Config) error {
	avail, err := m.sys.AvailableMemoryMB()
	if err != nil {
		// Stats failures are absorbed: admission stays permissive rather
		// than blocking all loads on a broken probe.
		m.logger.WarnContext(ctx, "memory probe failed, admitting anyway",
			"name", name, "error", err)
		avail = m.admissionBudgetMB + 1
	}
	if avail <= m.admissionBudgetMB {
		return fmt.Errorf("%w: %d MB available, budget %d MB",
			ErrInsufficientMemory, avail, m.admissionBudgetMB)
	}

	if m.memGate != nil && !m.memGate.TryAcquire(cfg.MemoryEstimateMB()) {
		return fmt.Errorf("%w: total budget exhausted", ErrInsufficientMemory)
	}
	return nil
}

// Acquire returns a loaded resource under a usage lease. The lease marks
// the resource in-use so idle eviction cannot reclaim it; callers must
// invoke release when done. Access updates lastUsedAt and the usage count.
func (m *Manager) Acquire(name string) (Resource, func(), error) {
	m.mu.RLock()
	en, ok := m.entries[name]
	if !ok {
		m.mu.RUnlock()
		return nil, nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	// The lease is taken before the read lock is dropped. The idle sweep
	// serializes on the write lock, so it cannot remove the entry between
	// lookup and lease.
	en.mu.Lock()
	en.lastUsed = time.Now()
	en.usage++
	en.leases++
	en.mu.Unlock()
	m.mu.RUnlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			en.mu.Lock()
			en.leases--
			en.mu.Unlock()
		})
	}
	return en.res, release, nil
}

// Unload removes a resource and releases its budget slot.
func (m *Manager) Unload(name string) error {
	m.mu.Lock()
	en, ok := m.entries[name]
	if ok {
		delete(m.entries, name)
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if m.memGate != nil {
		m.memGate.Release(en.memMB)
	}
	m.logger.Info("resource unloaded", "name", name)
	return nil
}

// UnloadAll removes every resource. Shutdown path.
func (m *Manager) UnloadAll() {
	m.mu.Lock()
	entries := m.entries
	m.entries = make(map[string]*entry)
	m.mu.Unlock()

	for name, en := range entries {
		if m.memGate != nil {
			m.memGate.Release(en.memMB)
		}
		m.logger.Info("resource unloaded", "name", name)
	}
}

// Reload unloads a resource and loads it again with its stored config.
func (m *Manager) Reload(ctx context.Context, name string) error {
	m.mu.RLock()
	en, ok := m.entries[name]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	cfg := en.cfg

	if err := m.Unload(name); err != nil {
		return err
	}
	return m.Load(ctx, name, cfg)
}

// EvictIdle unloads every resource idle for longer than maxIdle, skipping
// resources currently under a lease. Returns the names evicted.
func (m *Manager) EvictIdle(maxIdle time.Duration) []string {
	now := time.Now()

	// Holding the write lock for the whole sweep keeps Acquire from
	// racing a new lease onto an entry being evicted.
	m.mu.Lock()
	var evicted []string
	for name, en := range m.entries {
		en.mu.Lock()
		idle := now.Sub(en.lastUsed)
		leased := en.leases > 0
		en.mu.Unlock()

		if leased || idle <= maxIdle {
			continue
		}
		delete(m.entries, name)
		if m.memGate != nil {
			m.memGate.Release(en.memMB)
		}
		evicted = append(evicted, name)
	}
	m.mu.Unlock()

	if len(evicted) > 0 {
		m.logger.Info("idle resources evicted", "count", len(evicted), "names", evicted)
	}
	return evicted
}

// RunEvictionLoop sweeps idle resources every interval until ctx is done.
// Intended to run on its own goroutine.
func (m *Manager) RunEvictionLoop(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.EvictIdle(maxIdle)
		}
	}
}

// Status returns a snapshot of every loaded resource.
func (m *Manager) Status() map[string]Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]Status, len(m.entries))
	for name, en := range m.entries {
		en.mu.Lock()
		out[name] = Status{
			Kind:              en.res.Kind(),
			LoadedAt:          en.loadedAt,
			LastUsedAt:        en.lastUsed,
			UsageCount:        en.usage,
			EstimatedMemoryMB: en.memMB,
		}
		en.mu.Unlock()
	}
	return out
}

// Len returns the number of loaded resources.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// ManagedMemoryMB returns the summed memory estimates of loaded resources.
func (m *Manager) ManagedMemoryMB() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, en := range m.entries {
		total += en.memMB
	}
	return total
}

// MemoryUsage reports system memory stats via the SystemInfo collaborator.
func (m *Manager) MemoryUsage() (sysinfo.Stats, error) {
	return sysinfo.Collect(m.sys)
}
