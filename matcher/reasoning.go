package matcher

import "github.com/swetharajan7/StellarRec/model"

// Reasoning map keys, one per factor.
const (
	ReasonAcademic  = "academic_fit"
	ReasonInterest  = "program_alignment"
	ReasonLocation  = "location_preference"
	ReasonFinancial = "financial_fit"
	ReasonCultural  = "cultural_fit"
)

// Factor display names used in the per-factor breakdown.
const (
	FactorAcademic  = "Academic Fit"
	FactorInterest  = "Interest Alignment"
	FactorLocation  = "Location Preference"
	FactorFinancial = "Financial Fit"
	FactorCultural  = "Cultural Fit"
)

// reasonTier maps a factor score to one of three canned explanations.
// The vocabulary is fixed; tiers are >=0.8, >=0.6 and below.
func reasonTier(score float64, high, mid, low string) string {
	switch {
	case score >= 0.8:
		return high
	case score >= 0.6:
		return mid
	default:
		return low
	}
}

// reasoning produces the per-factor explanatory text for a match.
func reasoning(f factorSet) map[string]string {
	return map[string]string{
		ReasonAcademic: reasonTier(f.Academic,
			"Your academic credentials align well with this institution's standards",
			"Your academic profile meets the basic requirements",
			"Your academic credentials are below the typical admitted profile"),
		ReasonInterest: reasonTier(f.Interest,
			"Strong alignment between your interests and available programs",
			"Good match with several programs offered",
			"Limited alignment with your stated interests"),
		ReasonLocation: reasonTier(f.Location,
			"Located in your preferred area",
			"Reasonable location match",
			"Not in your preferred location"),
		ReasonFinancial: reasonTier(f.Financial,
			"Well within your budget constraints",
			"Manageable cost with potential financial aid",
			"May require significant financial aid"),
		ReasonCultural: reasonTier(f.Cultural,
			"Campus size and environment suit your profile well",
			"Campus environment is a reasonable fit",
			"Campus environment may take some adjustment"),
	}
}

// breakdown builds the per-factor score/weight entries for a match.
// Scores are reported on the [0,100] scale.
func breakdown(f factorSet, w Weights) []model.FactorScore {
	return []model.FactorScore{
		{Factor: FactorAcademic, Score: f.Academic * 100, Weight: w.Academic},
		{Factor: FactorInterest, Score: f.Interest * 100, Weight: w.Interest},
		{Factor: FactorLocation, Score: f.Location * 100, Weight: w.Location},
		{Factor: FactorFinancial, Score: f.Financial * 100, Weight: w.Financial},
		{Factor: FactorCultural, Score: f.Cultural * 100, Weight: w.Cultural},
	}
}
