package matcher

import (
	"fmt"
	"math"
)

// Weights distributes the blended score across the five factors.
// A valid weight set sums to 1.0.
type Weights struct {
	Academic  float64
	Interest  float64
	Location  float64
	Financial float64
	Cultural  float64
}

// DefaultWeights returns the production weight set.
func DefaultWeights() Weights {
	return Weights{
		Academic:  0.35,
		Interest:  0.25,
		Location:  0.15,
		Financial: 0.15,
		Cultural:  0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Academic + w.Interest + w.Location + w.Financial + w.Cultural
}

// Validate rejects weight sets that do not sum to 1.0 or contain negative
// entries.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Academic, w.Interest, w.Location, w.Financial, w.Cultural} {
		if v < 0 {
			return fmt.Errorf("negative factor weight %v", v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("factor weights sum to %v, want 1.0", w.Sum())
	}
	return nil
}
