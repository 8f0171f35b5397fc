package matcher

import "github.com/swetharajan7/StellarRec/model"

// confidence estimates how trustworthy a match is from data completeness on
// both sides and the consistency of the factor scores. Lower score variance
// means higher confidence; the consistency factor never drops below 0.5, so
// a legitimately lopsided profile is penalized the same as a noisy one
// (known limitation, kept pending product clarification).
func confidence(p *model.StudentProfile, c *model.Candidate, scores []float64) float64 {
	var student float64
	if p.GPA != nil {
		student += 0.3
	}
	if len(p.TestScores) > 0 {
		student += 0.3
	}
	if len(p.AcademicInterests) > 0 {
		student += 0.2
	}
	if len(p.Extracurriculars) > 0 {
		student += 0.2
	}

	var candidate float64
	if c.Admission != nil {
		candidate += 0.4
	}
	if len(c.Programs) > 0 {
		candidate += 0.3
	}
	if c.Metadata != nil {
		candidate += 0.3
	}

	consistency := max(0.5, 1.0-variance(scores))
	return clamp((student+candidate)/2*consistency*100, 0, 100)
}

// variance is the population variance.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var sum float64
	for _, x := range xs {
		sum += (x - mean) * (x - mean)
	}
	return sum / float64(len(xs))
}
