package stellarrec

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swetharajan7/StellarRec/matcher"
	"github.com/swetharajan7/StellarRec/model"
	"github.com/swetharajan7/StellarRec/resource"
	"github.com/swetharajan7/StellarRec/sysinfo"
)

func testCatalog() []model.Candidate {
	return []model.Candidate{
		{
			ID:       "u-tech",
			Name:     "Granite Institute of Technology",
			Location: model.Location{City: "Concord", State: "New Hampshire", Country: "USA"},
			Ranking:  model.Ranking{Overall: 25},
			Admission: &model.AdmissionRequirements{
				MinGPA: 3.5,
			},
			Programs: []model.Program{
				{Name: "Computer Science", Degree: "BS", Department: "Engineering"},
			},
			Metadata: &model.Metadata{AcceptanceRate: 0.3, Tuition: 42000, StudentCount: 9000},
		},
		{
			ID:       "u-arts",
			Name:     "Riverbend College",
			Location: model.Location{City: "Asheville", State: "North Carolina", Country: "USA"},
			Ranking:  model.Ranking{Overall: 110},
			Programs: []model.Program{
				{Name: "Fine Arts", Degree: "BA", Department: "Arts"},
				{Name: "Computer Science", Degree: "BS", Department: "Engineering"},
			},
			Metadata: &model.Metadata{AcceptanceRate: 0.55, Tuition: 21000, StudentCount: 4000},
		},
		{
			ID:       "u-big",
			Name:     "Central Plains University",
			Location: model.Location{City: "Wichita", State: "Kansas", Country: "USA"},
			Ranking:  model.Ranking{Overall: 140},
			Programs: []model.Program{
				{Name: "Agriculture", Degree: "BS", Department: "Life Sciences"},
			},
			Metadata: &model.Metadata{AcceptanceRate: 0.8, Tuition: 12000, StudentCount: 30000},
		},
	}
}

func testProfile() model.StudentProfile {
	gpa := 3.8
	return model.StudentProfile{
		ID:                "student-7",
		GPA:               &gpa,
		AcademicInterests: []string{"computer science"},
	}
}

func TestService_Matching(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	svc, err := New(WithMetricsCollector(metrics))
	require.NoError(t, err)
	defer svc.Close()

	ctx := context.Background()
	require.NoError(t, svc.BuildIndex(ctx, testCatalog()))

	matches, err := svc.FindMatches(ctx, testProfile(), 0, nil)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].MatchPercentage, matches[i].MatchPercentage)
	}

	similar, err := svc.GetSimilar(ctx, "u-tech", 2)
	require.NoError(t, err)
	require.NotEmpty(t, similar)
	assert.NotEqual(t, "u-tech", similar[0].CandidateID)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.IndexBuildCount)
	assert.Equal(t, int64(1), stats.MatchCount)
	assert.Equal(t, int64(1), stats.SimilarCount)
	assert.Zero(t, stats.MatchErrors)
}

func TestService_Rebuild(t *testing.T) {
	svc, err := New()
	require.NoError(t, err)
	defer svc.Close()

	ctx := context.Background()
	require.NoError(t, svc.BuildIndex(ctx, testCatalog()))
	require.NoError(t, svc.BuildIndex(ctx, testCatalog()[:1]))

	matches, err := svc.FindMatches(ctx, testProfile(), 0, nil)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestService_ErrorTranslation(t *testing.T) {
	svc, err := New()
	require.NoError(t, err)
	defer svc.Close()

	ctx := context.Background()

	_, err = svc.FindMatches(ctx, testProfile(), 0, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, svc.BuildIndex(ctx, testCatalog()))

	_, err = svc.GetSimilar(ctx, "u-missing", 3)
	assert.ErrorIs(t, err, ErrNotFound)

	var ire *InvalidRequestError
	_, err = svc.FindMatches(ctx, testProfile(), 500, nil)
	require.ErrorAs(t, err, &ire)
	assert.Equal(t, "maxResults", ire.Field)

	_, _, err = svc.AcquireResource("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Resources(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	svc, err := New(
		WithMetricsCollector(metrics),
		WithSystemInfo(sysinfo.Static{TotalMB: 16384, AvailableMB: 8192}),
		WithTotalBudgetMB(512),
	)
	require.NoError(t, err)
	defer svc.Close()

	ctx := context.Background()
	cfg := resource.GradientBoostingConfig{Features: []string{"gpa"}, Target: "admitted"}
	require.NoError(t, svc.LoadResource(ctx, "predictor", cfg))

	assert.ErrorIs(t, svc.LoadResource(ctx, "predictor", cfg), ErrAlreadyLoaded)

	res, release, err := svc.AcquireResource("predictor")
	require.NoError(t, err)
	assert.Equal(t, resource.KindGradientBoosting, res.Kind())

	// Leased resources survive an eviction sweep.
	assert.Empty(t, svc.EvictIdleResources(0))
	release()

	st := svc.ResourceStatus()["predictor"]
	assert.Equal(t, uint64(1), st.UsageCount)

	require.NoError(t, svc.ReloadResource(ctx, "predictor"))
	require.NoError(t, svc.UnloadResource("predictor"))
	assert.ErrorIs(t, svc.UnloadResource("predictor"), ErrNotFound)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.ResourceLoadCount)
	assert.Equal(t, int64(1), stats.ResourceLoadErrors)

	usage, err := svc.MemoryUsage()
	require.NoError(t, err)
	assert.Equal(t, int64(16384), usage.TotalMB)
}

func TestService_UnsupportedResourceKind(t *testing.T) {
	svc, err := New(WithSystemInfo(sysinfo.Static{TotalMB: 16384, AvailableMB: 8192}))
	require.NoError(t, err)
	defer svc.Close()

	err = svc.LoadResource(context.Background(), "mystery", nil)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
	assert.Empty(t, svc.ResourceStatus())
}

func TestService_IdleEviction(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	svc, err := New(
		WithMetricsCollector(metrics),
		WithSystemInfo(sysinfo.Static{TotalMB: 16384, AvailableMB: 8192}),
		WithIdleEviction(5*time.Millisecond, time.Millisecond),
	)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, svc.LoadResource(ctx, "stale", resource.GradientBoostingConfig{}))

	assert.Eventually(t, func() bool {
		return len(svc.ResourceStatus()) == 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, svc.Close())
	assert.GreaterOrEqual(t, metrics.GetStats().EvictedResources, int64(1))
}

func TestNew_InvalidWeights(t *testing.T) {
	_, err := New(WithWeights(matcher.Weights{Academic: 0.9, Interest: 0.9}))
	assert.Error(t, err)
}
