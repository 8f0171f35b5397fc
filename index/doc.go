// Package index builds the read-only derived view of a candidate catalog:
// a term-weighted content vector and a z-score normalized numeric tuple per
// candidate, plus per-term posting bitmaps for similarity-scan pruning.
//
// Term statistics (document frequencies) are corpus-wide, so any catalog
// change invalidates every vector: the index is immutable after Build and
// a membership change requires a full rebuild. Readers never coordinate;
// publication of a new index is the owner's concern (build-then-publish).
package index
