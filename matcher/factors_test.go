package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swetharajan7/StellarRec/model"
)

func fptr(v float64) *float64 { return &v }

func TestAcademicFit(t *testing.T) {
	c := &model.Candidate{
		Admission: &model.AdmissionRequirements{MinGPA: 3.7},
	}

	// Meeting the minimum yields a perfect GPA sub-score.
	p := &model.StudentProfile{GPA: fptr(3.9)}
	assert.InDelta(t, 1.0, academicFit(p, c), 1e-9)

	// Below the minimum, the sub-score is halved proportionally.
	p = &model.StudentProfile{GPA: fptr(3.0)}
	assert.InDelta(t, 3.0/3.7*0.5, academicFit(p, c), 1e-9)

	// Missing GPA falls back to the neutral default against the default
	// minimum.
	p = &model.StudentProfile{}
	assert.InDelta(t, 1.0, academicFit(p, &model.Candidate{}), 1e-9)

	// Comparable test scores blend in at 0.4 of the budget.
	c.Admission.TestScores = map[string]model.TestScoreRange{
		"SAT": {Min: 1500, Max: 1600},
	}
	p = &model.StudentProfile{
		GPA:        fptr(3.9),
		TestScores: map[string]model.TestScore{"SAT": {Total: 1400}},
	}
	want := 1.0*0.6 + 1400.0/1500.0*0.4
	assert.InDelta(t, want, academicFit(p, c), 1e-9)

	// A test the requester did not take is skipped, not scored as zero.
	p.TestScores = map[string]model.TestScore{"ACT": {Total: 30}}
	assert.InDelta(t, 1.0, academicFit(p, c), 1e-9)
}

func TestInterestAlignment(t *testing.T) {
	c := &model.Candidate{
		Programs: []model.Program{
			{Name: "Computer Science", Degree: "BS", Department: "Engineering"},
			{Name: "Mathematics", Degree: "BS", Department: "Science"},
		},
	}

	assert.InDelta(t, neutralInterest, interestAlignment(&model.StudentProfile{}, c), 1e-9)
	assert.InDelta(t, sparseInterest, interestAlignment(
		&model.StudentProfile{AcademicInterests: []string{"physics"}},
		&model.Candidate{}), 1e-9)

	p := &model.StudentProfile{AcademicInterests: []string{"computer science"}}
	assert.InDelta(t, 1.0, interestAlignment(p, c), 1e-9)

	p = &model.StudentProfile{
		AcademicInterests: []string{"computer science"},
		TargetPrograms:    []string{"biology"},
	}
	assert.InDelta(t, 0.5, interestAlignment(p, c), 1e-9)
}

func TestLocationPreference(t *testing.T) {
	aliases := map[string][]string{"usa": {"usa", "united states"}}
	c := &model.Candidate{
		Location: model.Location{City: "Boston", State: "Massachusetts", Country: "USA"},
	}

	assert.InDelta(t, neutralLocation,
		locationPreference(&model.StudentProfile{}, c, aliases), 1e-9)

	p := &model.StudentProfile{LocationPreferences: []string{"massachusetts"}}
	assert.InDelta(t, 1.0, locationPreference(p, c, aliases), 1e-9)

	// Country-level preference earns partial credit only.
	p = &model.StudentProfile{LocationPreferences: []string{"united states"}}
	assert.InDelta(t, partialLocation, locationPreference(p, c, aliases), 1e-9)

	p = &model.StudentProfile{LocationPreferences: []string{"texas"}}
	assert.InDelta(t, floorLocation, locationPreference(p, c, aliases), 1e-9)
}

func TestFinancialFit(t *testing.T) {
	c := &model.Candidate{Metadata: &model.Metadata{Tuition: 30000}}

	assert.InDelta(t, neutralFinancial, financialFit(&model.StudentProfile{}, c), 1e-9)

	p := &model.StudentProfile{Financial: &model.FinancialConstraints{MaxAnnualCost: 60000}}
	assert.InDelta(t, 1.0-0.5*0.3, financialFit(p, c), 1e-9)

	p.Financial.MaxAnnualCost = 15000
	assert.InDelta(t, 0.5, financialFit(p, c), 1e-9)

	// Far over budget bottoms out at the floor.
	p.Financial.MaxAnnualCost = 1000
	assert.InDelta(t, 0.1, financialFit(p, c), 1e-9)
}

func TestCulturalFit(t *testing.T) {
	meta := func(n int) *model.Candidate {
		return &model.Candidate{Metadata: &model.Metadata{StudentCount: n}}
	}
	assert.InDelta(t, 0.8, culturalFit(meta(3000)), 1e-9)
	assert.InDelta(t, 0.9, culturalFit(meta(15000)), 1e-9)
	assert.InDelta(t, 0.7, culturalFit(meta(40000)), 1e-9)
	assert.InDelta(t, 0.9, culturalFit(&model.Candidate{}), 1e-9)
}

func TestEstimateCost(t *testing.T) {
	c := &model.Candidate{Metadata: &model.Metadata{Tuition: 40000}}

	est := estimateCost(&model.StudentProfile{GPA: fptr(3.9)}, c)
	assert.InDelta(t, 40000, est.Tuition, 1e-9)
	assert.InDelta(t, 12000, est.RoomBoard, 1e-9)
	assert.InDelta(t, 57000, est.TotalCost, 1e-9)
	assert.InDelta(t, 57000*0.3, est.EstimatedAid, 1e-9)
	assert.InDelta(t, 57000*0.7, est.NetCost, 1e-9)

	est = estimateCost(&model.StudentProfile{GPA: fptr(3.6)}, c)
	assert.InDelta(t, 57000*0.2, est.EstimatedAid, 1e-9)

	// No GPA means no merit aid, not default-GPA aid.
	est = estimateCost(&model.StudentProfile{}, c)
	assert.Zero(t, est.EstimatedAid)
	assert.InDelta(t, est.TotalCost, est.NetCost, 1e-9)
}

func TestCategorize(t *testing.T) {
	meta := func(rate float64) *model.Candidate {
		return &model.Candidate{Metadata: &model.Metadata{AcceptanceRate: rate}}
	}
	assert.Equal(t, model.CategorySafety, categorize(85, meta(0.5)))
	assert.Equal(t, model.CategoryTarget, categorize(85, meta(0.2)))
	assert.Equal(t, model.CategoryReach, categorize(85, meta(0.05)))
	assert.Equal(t, model.CategoryTarget, categorize(65, meta(0.2)))
	assert.Equal(t, model.CategoryReach, categorize(50, meta(0.9)))
}

func TestConfidence(t *testing.T) {
	full := &model.StudentProfile{
		GPA:               fptr(3.8),
		TestScores:        map[string]model.TestScore{"SAT": {Total: 1500}},
		AcademicInterests: []string{"cs"},
		Extracurriculars:  []string{"robotics"},
	}
	rich := &model.Candidate{
		Admission: &model.AdmissionRequirements{MinGPA: 3.5},
		Programs:  []model.Program{{Name: "CS"}},
		Metadata:  &model.Metadata{},
	}

	// Complete data and perfectly consistent scores give full confidence.
	assert.InDelta(t, 100, confidence(full, rich, []float64{0.8, 0.8, 0.8, 0.8, 0.8}), 1e-9)

	// Empty profiles still yield a bounded, non-negative confidence.
	got := confidence(&model.StudentProfile{}, &model.Candidate{}, []float64{1, 0, 1, 0, 1})
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 100.0)
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	w := DefaultWeights()
	w.Academic = 0.5
	assert.Error(t, w.Validate())

	assert.Error(t, Weights{Academic: 1.5, Interest: -0.5}.Validate())
}
