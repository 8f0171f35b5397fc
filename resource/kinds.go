package resource

import (
	"context"
	"fmt"
)

// Kind identifies a scoring backend family.
type Kind string

const (
	KindCollaborativeFiltering Kind = "collaborative_filtering"
	KindGradientBoosting       Kind = "gradient_boosting"
	KindTransformerPipeline    Kind = "transformer"
)

// Default memory estimates per kind, in MB, used when a config does not
// supply its own.
const (
	defaultCollaborativeMB = 256
	defaultBoostingMB      = 128
	defaultTransformerMB   = 1024
)

// Config describes how to construct a scoring resource. Each kind carries
// only its relevant fields; dispatch happens on the concrete type.
type Config interface {
	Kind() Kind

	// MemoryEstimateMB is the memory the constructed resource is expected
	// to hold, charged against the manager's total budget.
	MemoryEstimateMB() int64
}

// CollaborativeFilteringConfig configures a collaborative-filtering backend.
type CollaborativeFilteringConfig struct {
	Features          []string
	Weights           map[string]float64
	EstimatedMemoryMB int64
}

// Kind implements Config.
func (CollaborativeFilteringConfig) Kind() Kind { return KindCollaborativeFiltering }

// MemoryEstimateMB implements Config.
func (c CollaborativeFilteringConfig) MemoryEstimateMB() int64 {
	if c.EstimatedMemoryMB > 0 {
		return c.EstimatedMemoryMB
	}
	return defaultCollaborativeMB
}

// GradientBoostingConfig configures a gradient-boosting backend.
type GradientBoostingConfig struct {
	Features          []string
	Target            string
	NEstimators       int
	LearningRate      float64
	MaxDepth          int
	EstimatedMemoryMB int64
}

// Kind implements Config.
func (GradientBoostingConfig) Kind() Kind { return KindGradientBoosting }

// MemoryEstimateMB implements Config.
func (c GradientBoostingConfig) MemoryEstimateMB() int64 {
	if c.EstimatedMemoryMB > 0 {
		return c.EstimatedMemoryMB
	}
	return defaultBoostingMB
}

// TransformerConfig configures a transformer-pipeline backend.
type TransformerConfig struct {
	ModelName         string
	MaxLength         int
	EstimatedMemoryMB int64
}

// Kind implements Config.
func (TransformerConfig) Kind() Kind { return KindTransformerPipeline }

// MemoryEstimateMB implements Config.
func (c TransformerConfig) MemoryEstimateMB() int64 {
	if c.EstimatedMemoryMB > 0 {
		return c.EstimatedMemoryMB
	}
	return defaultTransformerMB
}

// Resource is a loaded scoring backend. Internal prediction logic is the
// backend's concern; the manager only owns the lifecycle.
type Resource interface {
	Name() string
	Kind() Kind
	Config() Config
}

// Constructor builds a Resource from a config. Overridable for tests and
// for callers wiring real backends.
type Constructor func(ctx context.Context, name string, cfg Config) (Resource, error)

// defaultConstructor dispatches on the concrete config type.
func defaultConstructor(_ context.Context, name string, cfg Config) (Resource, error) {
	switch c := cfg.(type) {
	case CollaborativeFilteringConfig:
		return &collaborativeFilteringModel{name: name, cfg: c}, nil
	case GradientBoostingConfig:
		return &gradientBoostingModel{name: name, cfg: c}, nil
	case TransformerConfig:
		return &transformerPipeline{name: name, cfg: c}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, cfg.Kind())
	}
}

type collaborativeFilteringModel struct {
	name string
	cfg  CollaborativeFilteringConfig
}

func (m *collaborativeFilteringModel) Name() string   { return m.name }
func (m *collaborativeFilteringModel) Kind() Kind     { return KindCollaborativeFiltering }
func (m *collaborativeFilteringModel) Config() Config { return m.cfg }

type gradientBoostingModel struct {
	name string
	cfg  GradientBoostingConfig
}

func (m *gradientBoostingModel) Name() string   { return m.name }
func (m *gradientBoostingModel) Kind() Kind     { return KindGradientBoosting }
func (m *gradientBoostingModel) Config() Config { return m.cfg }

type transformerPipeline struct {
	name string
	cfg  TransformerConfig
}

func (m *transformerPipeline) Name() string   { return m.name }
func (m *transformerPipeline) Kind() Kind     { return KindTransformerPipeline }
func (m *transformerPipeline) Config() Config { return m.cfg }
