// Package model defines the core types shared across the matching engine,
// the candidate index and the resource manager.
//
// # Catalog Types
//
//   - Candidate: an institution entry in the catalog being ranked
//   - Program, Location, Ranking, AdmissionRequirements: candidate sub-records
//
// # Request/Result Types
//
//   - StudentProfile: request-scoped requester profile
//   - MatchResult: per-candidate ranked result with factor breakdown
//   - SimilarCandidate: content-similarity search result
//
// Candidates are immutable once handed to an index build; optional
// sub-records (Admission, Metadata, GPA, ...) are pointers so that absence
// is distinguishable from a zero value.
package model
