package matcher

import "github.com/swetharajan7/StellarRec/model"

// Cost model constants. Room and board is estimated as a share of tuition;
// books and personal expenses are flat annual figures.
const (
	roomBoardFactor  = 0.3
	booksSupplies    = 2000.0
	personalExpenses = 3000.0

	meritAidGPA     = 3.8
	meritAidShare   = 0.3
	partialAidGPA   = 3.5
	partialAidShare = 0.2
)

// estimateCost projects the annual cost of attendance and merit aid.
// Aid is granted only when a GPA is actually supplied.
func estimateCost(p *model.StudentProfile, c *model.Candidate) model.CostEstimate {
	tuition := defaultTuition
	if c.Metadata != nil {
		tuition = c.Metadata.Tuition
	}

	roomBoard := tuition * roomBoardFactor
	total := tuition + roomBoard + booksSupplies + personalExpenses

	var aid float64
	if p.GPA != nil {
		switch {
		case *p.GPA >= meritAidGPA:
			aid = total * meritAidShare
		case *p.GPA >= partialAidGPA:
			aid = total * partialAidShare
		}
	}

	return model.CostEstimate{
		Tuition:          tuition,
		RoomBoard:        roomBoard,
		BooksSupplies:    booksSupplies,
		PersonalExpenses: personalExpenses,
		TotalCost:        total,
		EstimatedAid:     aid,
		NetCost:          max(0, total-aid),
	}
}

// categorize classifies a match as safety, target or reach. Thresholds act
// on the blended match score, not a pure admissibility score; candidates
// with extreme financial or cultural scores may therefore be mislabeled
// (flagged upstream, intentionally not resolved here).
func categorize(matchPercentage float64, c *model.Candidate) model.Category {
	acceptanceRate := defaultAcceptance
	if c.Metadata != nil {
		acceptanceRate = c.Metadata.AcceptanceRate
	}
	switch {
	case matchPercentage >= 80 && acceptanceRate >= 0.3:
		return model.CategorySafety
	case matchPercentage >= 60 && acceptanceRate >= 0.15:
		return model.CategoryTarget
	default:
		return model.CategoryReach
	}
}
