package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swetharajan7/StellarRec/distance"
	"github.com/swetharajan7/StellarRec/model"
)

func testCatalog() []model.Candidate {
	return []model.Candidate{
		{
			ID:       "mit-001",
			Name:     "Massachusetts Institute of Technology",
			Location: model.Location{City: "Cambridge", State: "Massachusetts", Country: "USA"},
			Ranking:  model.Ranking{Overall: 1},
			Programs: []model.Program{
				{Name: "Computer Science", Degree: "BS", Department: "EECS"},
				{Name: "Artificial Intelligence", Degree: "MS", Department: "CSAIL"},
			},
			Metadata: &model.Metadata{AcceptanceRate: 0.04, Tuition: 57986, StudentCount: 11934},
		},
		{
			ID:       "berkeley-001",
			Name:     "UC Berkeley",
			Location: model.Location{City: "Berkeley", State: "California", Country: "USA"},
			Ranking:  model.Ranking{Overall: 3},
			Programs: []model.Program{
				{Name: "Computer Science", Degree: "BS", Department: "EECS"},
				{Name: "Data Science", Degree: "BS", Department: "Statistics"},
			},
			Metadata: &model.Metadata{AcceptanceRate: 0.15, Tuition: 44066, StudentCount: 45057},
		},
		{
			ID:       "gatech-001",
			Name:     "Georgia Institute of Technology",
			Location: model.Location{City: "Atlanta", State: "Georgia", Country: "USA"},
			Ranking:  model.Ranking{Overall: 8},
			Programs: []model.Program{
				{Name: "Computer Science", Degree: "BS", Department: "College of Computing"},
			},
			Metadata: &model.Metadata{AcceptanceRate: 0.21, Tuition: 33794, StudentCount: 36848},
		},
	}
}

func TestBuild(t *testing.T) {
	ix, err := Build(context.Background(), testCatalog())
	require.NoError(t, err)

	require.Equal(t, 3, ix.Len())

	i, ok := ix.Ordinal("berkeley-001")
	require.True(t, ok)
	assert.Equal(t, "UC Berkeley", ix.At(i).Name)

	_, ok = ix.Ordinal("nope")
	assert.False(t, ok)
}

func TestBuild_ContentVectorsNormalized(t *testing.T) {
	ix, err := Build(context.Background(), testCatalog())
	require.NoError(t, err)

	for i := 0; i < ix.Len(); i++ {
		v := ix.ContentVector(i)
		assert.InDelta(t, 1.0, distance.Dot(v, v), 1e-9, "vector %d should be unit length", i)
	}

	// Shared program vocabulary makes MIT and Berkeley non-orthogonal.
	mit, _ := ix.Ordinal("mit-001")
	ucb, _ := ix.Ordinal("berkeley-001")
	assert.Greater(t, distance.Dot(ix.ContentVector(mit), ix.ContentVector(ucb)), 0.0)
}

func TestBuild_NumericZScores(t *testing.T) {
	ix, err := Build(context.Background(), testCatalog())
	require.NoError(t, err)

	// Per-feature z-scores over the catalog sum to ~0.
	for d := 0; d < numericDims; d++ {
		var sum float64
		for i := 0; i < ix.Len(); i++ {
			sum += ix.NumericVector(i)[d]
		}
		assert.InDelta(t, 0.0, sum, 1e-9, "feature %d", d)
	}
}

func TestBuild_ZeroStddevNormalizesAgainstOne(t *testing.T) {
	// Single candidate: every feature is constant, stddev would be 0.
	ix, err := Build(context.Background(), testCatalog()[:1])
	require.NoError(t, err)

	require.Equal(t, 1, ix.Len())
	for _, v := range ix.NumericVector(0) {
		assert.False(t, v != v, "z-score must not be NaN")
		assert.Equal(t, 0.0, v)
	}
}

func TestBuild_Empty(t *testing.T) {
	ix, err := Build(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, ix.Len())
	_, ok := ix.Ordinal("anything")
	assert.False(t, ok)
}

func TestBuild_DuplicateID(t *testing.T) {
	cat := testCatalog()
	cat[1].ID = cat[0].ID
	_, err := Build(context.Background(), cat)
	assert.Error(t, err)
}

func TestBuild_MissingDataDefaults(t *testing.T) {
	ix, err := Build(context.Background(), []model.Candidate{
		{ID: "a", Name: "Alpha College"},
		{ID: "b", Name: "Beta College", Metadata: &model.Metadata{AcceptanceRate: 0.5, Tuition: 50000, StudentCount: 10000}},
	})
	require.NoError(t, err)

	// Candidate "a" has no ranking and no metadata; defaults make its raw
	// tuple identical to "b"'s, so both z-score to zero.
	assert.Equal(t, ix.NumericVector(0), ix.NumericVector(1))
}

func TestSharedTermCandidates(t *testing.T) {
	ix, err := Build(context.Background(), testCatalog())
	require.NoError(t, err)

	mit, _ := ix.Ordinal("mit-001")
	shared := ix.SharedTermCandidates(mit)

	// All three share "computer science" tokens; includes the query itself.
	assert.True(t, shared.Contains(uint32(mit)))
	assert.Equal(t, uint64(3), shared.GetCardinality())
}

func TestBuild_CopiesCatalog(t *testing.T) {
	cat := testCatalog()
	ix, err := Build(context.Background(), cat)
	require.NoError(t, err)

	cat[0].Name = "mutated"
	i, _ := ix.Ordinal("mit-001")
	assert.Equal(t, "Massachusetts Institute of Technology", ix.At(i).Name)
}
