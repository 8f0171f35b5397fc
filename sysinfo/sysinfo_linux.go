//go:build linux

package sysinfo

import (
	"golang.org/x/sys/unix"
)

// System returns the platform memory provider.
func System() Provider { return linuxProvider{} }

type linuxProvider struct{}

func (linuxProvider) AvailableMemoryMB() (int64, error) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return 0, err
	}
	// Freeram understates availability; buffers are reclaimable.
	free := (uint64(si.Freeram) + uint64(si.Bufferram)) * uint64(si.Unit)
	return int64(free / (1 << 20)), nil
}

func (linuxProvider) TotalMemoryMB() (int64, error) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return 0, err
	}
	total := uint64(si.Totalram) * uint64(si.Unit)
	return int64(total / (1 << 20)), nil
}
