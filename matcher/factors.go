package matcher

import (
	"strings"

	"github.com/swetharajan7/StellarRec/model"
)

// Neutral defaults substituted when profile or candidate data is missing.
// Every factor returns a documented neutral score rather than an error:
// ranking availability must not depend on data completeness.
const (
	defaultGPA        = 3.0
	defaultMinGPA     = 3.0
	defaultTuition    = 50000.0
	defaultMaxBudget  = 100000.0
	defaultStudents   = 10000
	defaultAcceptance = 0.5

	neutralInterest  = 0.5 // requester supplied no interests or programs
	sparseInterest   = 0.3 // candidate lists no programs
	neutralLocation  = 0.7 // no location preference given
	partialLocation  = 0.6 // broad-region (country-level) match only
	floorLocation    = 0.3 // no match at all
	neutralFinancial = 0.7 // no financial constraint supplied
)

// factorSet holds the five per-candidate component scores, each in [0,1].
type factorSet struct {
	Academic  float64
	Interest  float64
	Location  float64
	Financial float64
	Cultural  float64
}

func (f factorSet) slice() []float64 {
	return []float64{f.Academic, f.Interest, f.Location, f.Financial, f.Cultural}
}

// weighted blends the factor scores with the given weights.
func (f factorSet) weighted(w Weights) float64 {
	return f.Academic*w.Academic +
		f.Interest*w.Interest +
		f.Location*w.Location +
		f.Financial*w.Financial +
		f.Cultural*w.Cultural
}

// academicFit compares GPA and test scores against admission requirements.
// The GPA sub-score takes 0.6 of the academic budget and the test sub-score
// 0.4; with no comparable test data the result is the GPA sub-score alone,
// rescaled back to [0,1].
func academicFit(p *model.StudentProfile, c *model.Candidate) float64 {
	gpa := defaultGPA
	if p.GPA != nil {
		gpa = *p.GPA
	}
	minGPA := defaultMinGPA
	if c.Admission != nil && c.Admission.MinGPA > 0 {
		minGPA = c.Admission.MinGPA
	}

	var gpaScore float64
	if gpa >= minGPA {
		gpaScore = min(1.0, gpa/minGPA)
	} else {
		gpaScore = gpa / minGPA * 0.5
	}

	score := gpaScore * 0.6
	budget := 0.6

	if len(p.TestScores) > 0 && c.Admission != nil && len(c.Admission.TestScores) > 0 {
		var testSum float64
		var testCount int
		for test, req := range c.Admission.TestScores {
			s, ok := p.TestScores[test]
			if !ok {
				continue
			}
			if req.Min > 0 {
				testSum += min(1.0, float64(s.Total)/float64(req.Min))
			} else {
				testSum += 0.8
			}
			testCount++
		}
		if testCount > 0 {
			score += testSum / float64(testCount) * 0.4
			budget += 0.4
		}
	}

	return clamp01(score / budget)
}

// interestAlignment counts case-insensitive substring matches of the
// requester's interests and target programs against the candidate's program
// names and departments.
func interestAlignment(p *model.StudentProfile, c *model.Candidate) float64 {
	terms := make([]string, 0, len(p.AcademicInterests)+len(p.TargetPrograms))
	terms = append(terms, p.AcademicInterests...)
	terms = append(terms, p.TargetPrograms...)
	if len(terms) == 0 {
		return neutralInterest
	}
	if len(c.Programs) == 0 {
		return sparseInterest
	}

	var sb strings.Builder
	for _, prog := range c.Programs {
		sb.WriteString(prog.Name)
		sb.WriteByte(' ')
		sb.WriteString(prog.Department)
		sb.WriteByte(' ')
	}
	haystack := strings.ToLower(sb.String())

	matches := 0
	for _, term := range terms {
		if term != "" && strings.Contains(haystack, strings.ToLower(term)) {
			matches++
		}
	}
	return clamp01(float64(matches) / float64(len(terms)))
}

// locationPreference scores 1.0 on any substring match against
// city/state/country, partial credit for a broad-region match against the
// candidate's country, a floor otherwise, and a neutral score when no
// preference was given.
func locationPreference(p *model.StudentProfile, c *model.Candidate, regionAliases map[string][]string) float64 {
	if len(p.LocationPreferences) == 0 {
		return neutralLocation
	}

	city := strings.ToLower(c.Location.City)
	state := strings.ToLower(c.Location.State)
	country := strings.ToLower(c.Location.Country)

	for _, pref := range p.LocationPreferences {
		pl := strings.ToLower(pref)
		if pl == "" {
			continue
		}
		if strings.Contains(city, pl) || strings.Contains(state, pl) || strings.Contains(country, pl) {
			return 1.0
		}
	}

	for _, pref := range p.LocationPreferences {
		pl := strings.ToLower(pref)
		for aliasCountry, aliases := range regionAliases {
			if country != aliasCountry {
				continue
			}
			for _, alias := range aliases {
				if strings.Contains(pl, alias) {
					return partialLocation
				}
			}
		}
	}

	return floorLocation
}

// financialFit rewards tuition under budget and penalizes over-budget
// candidates down to a 0.1 floor.
func financialFit(p *model.StudentProfile, c *model.Candidate) float64 {
	if p.Financial == nil {
		return neutralFinancial
	}
	budget := p.Financial.MaxAnnualCost
	if budget <= 0 {
		budget = defaultMaxBudget
	}
	tuition := defaultTuition
	if c.Metadata != nil {
		tuition = c.Metadata.Tuition
	}

	var score float64
	if tuition <= budget {
		score = 1.0 - (tuition/budget)*0.3
	} else {
		score = max(0.1, budget/tuition)
	}
	return clamp01(score)
}

// culturalFit buckets by student body size. This is a documented heuristic
// proxy, kept replaceable behind the factor boundary.
func culturalFit(c *model.Candidate) float64 {
	students := defaultStudents
	if c.Metadata != nil {
		students = c.Metadata.StudentCount
	}
	switch {
	case students < 5000:
		return 0.8
	case students < 20000:
		return 0.9
	default:
		return 0.7
	}
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
