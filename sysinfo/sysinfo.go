package sysinfo

// Provider reports system memory in megabytes.
// Implementations must be safe for concurrent use.
type Provider interface {
	// AvailableMemoryMB returns the memory currently available for new
	// allocations without swapping.
	AvailableMemoryMB() (int64, error)

	// TotalMemoryMB returns the total physical memory.
	TotalMemoryMB() (int64, error)
}

// Stats is a point-in-time memory snapshot.
type Stats struct {
	TotalMB     int64   `json:"totalMB"`
	AvailableMB int64   `json:"availableMB"`
	UsedMB      int64   `json:"usedMB"`
	UsedPercent float64 `json:"usedPercent"`
}

// Collect builds a Stats snapshot from a Provider.
func Collect(p Provider) (Stats, error) {
	total, err := p.TotalMemoryMB()
	if err != nil {
		return Stats{}, err
	}
	avail, err := p.AvailableMemoryMB()
	if err != nil {
		return Stats{}, err
	}
	s := Stats{
		TotalMB:     total,
		AvailableMB: avail,
		UsedMB:      total - avail,
	}
	if total > 0 {
		s.UsedPercent = float64(s.UsedMB) / float64(total) * 100
	}
	return s, nil
}

// Static is a fixed-value Provider for tests and platforms without a
// native implementation.
type Static struct {
	TotalMB     int64
	AvailableMB int64
}

// AvailableMemoryMB implements Provider.
func (s Static) AvailableMemoryMB() (int64, error) { return s.AvailableMB, nil }

// TotalMemoryMB implements Provider.
func (s Static) TotalMemoryMB() (int64, error) { return s.TotalMB, nil }
