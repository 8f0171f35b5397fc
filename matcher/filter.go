package matcher

import (
	"slices"

	"github.com/swetharajan7/StellarRec/model"
)

// Filters restricts a scored result set. All set conditions are AND-combined
// and applied after scoring, before truncation to maxResults. A nil Filters
// allows everything.
type Filters struct {
	// Categories is an allow-list; empty means all categories.
	Categories []model.Category `json:"categories,omitempty"`

	// MinMatchPercentage drops results scoring below the threshold.
	MinMatchPercentage *float64 `json:"minMatchPercentage,omitempty"`

	// MaxNetCost drops results whose estimated net cost exceeds the cap.
	MaxNetCost *float64 `json:"maxNetCost,omitempty"`
}

func (f *Filters) allow(m *model.MatchResult) bool {
	if f == nil {
		return true
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, m.Category) {
		return false
	}
	if f.MinMatchPercentage != nil && m.MatchPercentage < *f.MinMatchPercentage {
		return false
	}
	if f.MaxNetCost != nil && m.EstimatedCost.NetCost > *f.MaxNetCost {
		return false
	}
	return true
}
