package index

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/swetharajan7/StellarRec/distance"
	"github.com/swetharajan7/StellarRec/model"
)

// Defaults substituted for absent candidate data when deriving the numeric
// tuple. They mirror the neutral assumptions of the scoring factors.
const (
	defaultOverallRanking = 100
	defaultAcceptanceRate = 0.5
	defaultTuition        = 50000
	defaultStudentCount   = 10000
)

// numericDims is the width of the numeric tuple:
// [overall ranking, acceptance rate, tuition, student count].
const numericDims = 4

// Index is the immutable derived view of a candidate catalog.
// All accessors are safe for concurrent use; returned slices must be
// treated as read-only.
type Index struct {
	candidates []model.Candidate
	byID       map[string]int

	vocab    map[string]int // term -> content vector dimension
	content  [][]float64    // L2-normalized TF-IDF, one per candidate
	terms    [][]string     // unique descriptor terms per candidate
	postings map[string]*roaring.Bitmap

	numeric [][]float64 // z-scored numeric tuples, one per candidate
}

// Build derives content and numeric vectors for the given catalog.
// The candidate slice is copied; later mutation of the caller's slice does
// not affect the index. An empty catalog yields an empty, queryable index.
func Build(ctx context.Context, candidates []model.Candidate) (*Index, error) {
	ix := &Index{
		candidates: slices.Clone(candidates),
		byID:       make(map[string]int, len(candidates)),
		vocab:      make(map[string]int),
		postings:   make(map[string]*roaring.Bitmap),
	}
	for i, c := range ix.candidates {
		if _, dup := ix.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate candidate id %q", c.ID)
		}
		ix.byID[c.ID] = i
	}

	if err := ix.buildContent(ctx); err != nil {
		return nil, err
	}
	ix.buildNumeric()

	return ix, nil
}

// buildContent computes corpus-wide TF-IDF vectors over the candidate
// descriptors. Tokenization is fanned out; term statistics and the final
// vectors are assembled sequentially because document frequencies depend on
// the whole corpus.
func (ix *Index) buildContent(ctx context.Context) error {
	n := len(ix.candidates)
	counts := make([]map[string]int, n)
	ix.terms = make([][]string, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range ix.candidates {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tf := make(map[string]int)
			for _, tok := range tokenize(descriptor(&ix.candidates[i])) {
				tf[tok]++
			}
			counts[i] = tf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Document frequencies, vocabulary and postings.
	df := make(map[string]int)
	for i, tf := range counts {
		ts := make([]string, 0, len(tf))
		for term := range tf {
			df[term]++
			ts = append(ts, term)
			if _, ok := ix.vocab[term]; !ok {
				ix.vocab[term] = len(ix.vocab)
			}
			bm, ok := ix.postings[term]
			if !ok {
				bm = roaring.New()
				ix.postings[term] = bm
			}
			bm.Add(uint32(i))
		}
		slices.Sort(ts)
		ix.terms[i] = ts
	}

	// Smoothed IDF, then L2-normalized TF-IDF vectors.
	idf := make([]float64, len(ix.vocab))
	for term, dim := range ix.vocab {
		idf[dim] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	ix.content = make([][]float64, n)
	for i, tf := range counts {
		vec := make([]float64, len(ix.vocab))
		for term, count := range tf {
			dim := ix.vocab[term]
			vec[dim] = float64(count) * idf[dim]
		}
		distance.NormalizeL2InPlace(vec)
		ix.content[i] = vec
	}
	return nil
}

// buildNumeric z-score normalizes the numeric tuples against the current
// catalog's mean and stddev. A zero stddev (constant feature or fewer than
// two candidates) normalizes against 1 instead to avoid division errors.
func (ix *Index) buildNumeric() {
	n := len(ix.candidates)
	raw := make([][]float64, n)
	for i := range ix.candidates {
		raw[i] = numericTuple(&ix.candidates[i])
	}

	mean := make([]float64, numericDims)
	std := make([]float64, numericDims)
	if n > 0 {
		for _, t := range raw {
			for d, v := range t {
				mean[d] += v
			}
		}
		for d := range mean {
			mean[d] /= float64(n)
		}
		for _, t := range raw {
			for d, v := range t {
				std[d] += (v - mean[d]) * (v - mean[d])
			}
		}
		for d := range std {
			std[d] = math.Sqrt(std[d] / float64(n))
		}
	}
	for d := range std {
		if std[d] == 0 {
			std[d] = 1
		}
	}

	ix.numeric = make([][]float64, n)
	for i, t := range raw {
		vec := make([]float64, numericDims)
		for d, v := range t {
			vec[d] = (v - mean[d]) / std[d]
		}
		ix.numeric[i] = vec
	}
}

// descriptor builds the textual profile of a candidate: name, city, state,
// program names and departments, and a ranking bucket token.
func descriptor(c *model.Candidate) string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteByte(' ')
	sb.WriteString(c.Location.City)
	sb.WriteByte(' ')
	sb.WriteString(c.Location.State)
	for _, p := range c.Programs {
		sb.WriteByte(' ')
		sb.WriteString(p.Name)
		sb.WriteByte(' ')
		sb.WriteString(p.Department)
	}
	overall := c.Ranking.Overall
	if overall <= 0 {
		overall = defaultOverallRanking
	}
	fmt.Fprintf(&sb, " ranking_%d", overall)
	return sb.String()
}

// numericTuple extracts [overall ranking, acceptance rate, tuition,
// student count], substituting defaults for absent data.
func numericTuple(c *model.Candidate) []float64 {
	overall := float64(c.Ranking.Overall)
	if c.Ranking.Overall <= 0 {
		overall = defaultOverallRanking
	}
	if c.Metadata == nil {
		return []float64{overall, defaultAcceptanceRate, defaultTuition, defaultStudentCount}
	}
	return []float64{
		overall,
		c.Metadata.AcceptanceRate,
		c.Metadata.Tuition,
		float64(c.Metadata.StudentCount),
	}
}

// tokenize lowercases and splits on whitespace.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// Len returns the number of candidates in the index.
func (ix *Index) Len() int { return len(ix.candidates) }

// At returns the candidate at ordinal i.
func (ix *Index) At(i int) *model.Candidate { return &ix.candidates[i] }

// Ordinal resolves a candidate ID to its build-time ordinal.
func (ix *Index) Ordinal(id string) (int, bool) {
	i, ok := ix.byID[id]
	return i, ok
}

// ContentVector returns the L2-normalized TF-IDF vector of candidate i.
func (ix *Index) ContentVector(i int) []float64 { return ix.content[i] }

// NumericVector returns the z-scored numeric tuple of candidate i.
func (ix *Index) NumericVector(i int) []float64 { return ix.numeric[i] }

// SharedTermCandidates returns the ordinals of every candidate sharing at
// least one descriptor term with candidate i, including i itself. Used to
// prune cosine scans in similarity search.
func (ix *Index) SharedTermCandidates(i int) *roaring.Bitmap {
	out := roaring.New()
	for _, term := range ix.terms[i] {
		if bm, ok := ix.postings[term]; ok {
			out.Or(bm)
		}
	}
	return out
}
