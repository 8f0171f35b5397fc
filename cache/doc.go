// Package cache defines the key-value cache contract consumed by the
// matching engine. The client implementation (Redis or otherwise) lives
// outside this module; only the interface, the key namespaces and the
// serialization codec are owned here.
//
// Each key namespace has exactly one serialization contract: values are
// JSON-encoded and s2-compressed via Codec. Changing the codec invalidates
// previously cached bytes, so treat it as a breaking-change boundary.
package cache
