// Package sysinfo reports system memory availability for the resource
// manager's admission checks. The Provider interface is the injection seam:
// production code uses System(), tests use Static.
package sysinfo
