package model

// Location is the physical location of a candidate institution.
type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// Ranking holds ranking positions for a candidate.
// Overall <= 0 means the overall ranking is unknown.
type Ranking struct {
	Overall   int            `json:"overall"`
	ByProgram map[string]int `json:"byProgram,omitempty"`
}

// TestScoreRange is the accepted score range for a standardized test.
type TestScoreRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// AdmissionRequirements describes the minimum academic profile a candidate
// expects from applicants.
type AdmissionRequirements struct {
	MinGPA     float64                   `json:"minGPA"`
	TestScores map[string]TestScoreRange `json:"testScores,omitempty"`
}

// Program is a degree program offered by a candidate.
type Program struct {
	Name       string `json:"name"`
	Degree     string `json:"degree"`
	Department string `json:"department"`
}

// Metadata carries selectivity and cost statistics for a candidate.
type Metadata struct {
	AcceptanceRate float64 `json:"acceptanceRate"`
	Tuition        float64 `json:"tuition"`
	StudentCount   int     `json:"studentCount"`
}

// Candidate is an institution entry in the catalog being ranked.
// It is immutable after being handed to an index build.
type Candidate struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Location  Location               `json:"location"`
	Ranking   Ranking                `json:"ranking"`
	Admission *AdmissionRequirements `json:"admissionRequirements,omitempty"`
	Programs  []Program              `json:"programs,omitempty"`
	Metadata  *Metadata              `json:"metadata,omitempty"`
}

// TestScore is a requester's result for a standardized test.
type TestScore struct {
	Total    int            `json:"total"`
	Sections map[string]int `json:"sections,omitempty"`
}

// FinancialConstraints bounds what a requester can spend per year.
type FinancialConstraints struct {
	MaxAnnualCost float64 `json:"maxAnnualCost"`
}

// StudentProfile is the requester profile scored against the catalog.
// It is request-scoped and has no persisted lifecycle.
type StudentProfile struct {
	ID                  string                `json:"studentId"`
	GPA                 *float64              `json:"gpa,omitempty"` // must be within [0,4] when set
	TestScores          map[string]TestScore  `json:"testScores,omitempty"`
	AcademicInterests   []string              `json:"academicInterests,omitempty"`
	TargetPrograms      []string              `json:"targetPrograms,omitempty"`
	LocationPreferences []string              `json:"locationPreferences,omitempty"`
	Financial           *FinancialConstraints `json:"financialConstraints,omitempty"`
	Extracurriculars    []string              `json:"extracurriculars,omitempty"`
	CareerGoals         []string              `json:"careerGoals,omitempty"`
}

// Category classifies how attainable a match is for the requester.
type Category string

const (
	CategorySafety Category = "safety"
	CategoryTarget Category = "target"
	CategoryReach  Category = "reach"
)

// FactorScore is one entry of the per-factor breakdown.
// Score is reported on the [0,100] scale; Weight is the share of the
// blended score contributed by this factor.
type FactorScore struct {
	Factor string  `json:"factor"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
}

// CostEstimate is the estimated annual cost of attendance.
type CostEstimate struct {
	Tuition          float64 `json:"tuition"`
	RoomBoard        float64 `json:"roomBoard"`
	BooksSupplies    float64 `json:"booksSupplies"`
	PersonalExpenses float64 `json:"personalExpenses"`
	TotalCost        float64 `json:"totalCost"`
	EstimatedAid     float64 `json:"estimatedAid"`
	NetCost          float64 `json:"netCost"`
}

// MatchResult is a ranked match produced for a single request.
type MatchResult struct {
	CandidateID     string            `json:"candidateId"`
	CandidateName   string            `json:"candidateName"`
	MatchPercentage float64           `json:"matchPercentage"` // [0,100]
	Confidence      float64           `json:"confidence"`      // [0,100]
	Category        Category          `json:"category"`
	Factors         []FactorScore     `json:"factors"`
	Reasoning       map[string]string `json:"reasoning"`
	Programs        []Program         `json:"programs,omitempty"`
	EstimatedCost   CostEstimate      `json:"estimatedCost"`
}

// SimilarCandidate is a content-similarity search result.
type SimilarCandidate struct {
	CandidateID     string    `json:"candidateId"`
	Name            string    `json:"name"`
	SimilarityScore float64   `json:"similarityScore"`
	Programs        []Program `json:"programs,omitempty"`
	Location        Location  `json:"location"`
}
