// Package distance provides the vector similarity primitives used by the
// candidate index. Content vectors are L2-normalized at build time, so
// cosine similarity between stored vectors reduces to a dot product.
package distance
