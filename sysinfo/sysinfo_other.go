//go:build !linux

package sysinfo

// System returns the platform memory provider.
//
// On platforms without a native implementation, memory is reported as a
// fixed 8 GiB with half available, which keeps admission checks permissive
// rather than failing closed. Inject a Static provider with real numbers
// if the host size is known.
func System() Provider {
	return Static{TotalMB: 8192, AvailableMB: 4096}
}
