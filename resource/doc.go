// Package resource manages named scoring backends under a memory admission
// policy: load with singleflight collapse, usage accounting on access,
// short-lived leases to protect in-use resources, and idle eviction.
//
// A Manager instance is owned by the service root and passed by reference;
// there is no global registry, so tests construct isolated managers.
package resource
