package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swetharajan7/StellarRec/model"
)

func TestKeyNamespaces(t *testing.T) {
	assert.Equal(t, "matches:s1:abc", MatchesKey("s1", "abc"))
	assert.Equal(t, "matches:s1:", MatchesPrefix("s1"))
	assert.Equal(t, "essay:deadbeef", EssayKey("deadbeef"))
	assert.Equal(t, "prediction:s1:mit-001", PredictionKey("s1", "mit-001"))
}

func TestTTLs(t *testing.T) {
	assert.Equal(t, time.Hour, MatchesTTL)
	assert.Equal(t, 30*time.Minute, EssayTTL)
	assert.Equal(t, 2*time.Hour, PredictionTTL)
}

func TestJSONS2_RoundTrip(t *testing.T) {
	in := []model.MatchResult{
		{
			CandidateID:     "mit-001",
			CandidateName:   "MIT",
			MatchPercentage: 87.5,
			Confidence:      72.0,
			Category:        model.CategoryTarget,
			Reasoning:       map[string]string{"academic_fit": "meets requirements"},
		},
	}

	data, err := Default.Marshal(in)
	require.NoError(t, err)

	var out []model.MatchResult
	require.NoError(t, Default.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestJSONS2_RejectsGarbage(t *testing.T) {
	var out []model.MatchResult
	err := Default.Unmarshal([]byte("not-s2-data"), &out)
	assert.Error(t, err)
}

func TestJSONS2_Name(t *testing.T) {
	assert.Equal(t, "json+s2", Default.Name())
}
