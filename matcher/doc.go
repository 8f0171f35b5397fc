// Package matcher scores a candidate catalog against a requester profile
// using five independent weighted factors, and answers content-similarity
// queries over the same index.
//
// All scoring and search operations are stateless reads over an immutable
// index published with SetIndex; concurrent calls never coordinate on index
// data. Results may be memoized through the injected cache facade; cache
// failures are absorbed and never fail the ranking computation.
package matcher
