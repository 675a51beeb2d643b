package domain

type Status string

const (
	StatusUp          Status = "up"
	StatusDown        Status = "down"
	StatusUnsupported Status = "unsupported"
	// StatusUnknown is never persisted; it only stands in for "no prior
	// result" when a snapshot has no entry for a URL.
	StatusUnknown Status = "unknown"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUp, StatusDown, StatusUnsupported, StatusUnknown:
		return true
	}
	return false
}

// Snapshot maps a site URL to its last determined status.
type Snapshot map[string]Status

// Get returns the stored status for url, or StatusUnknown when absent.
func (s Snapshot) Get(url string) Status {
	if status, ok := s[url]; ok && status != "" {
		return status
	}
	return StatusUnknown
}

func (s Snapshot) Clone() Snapshot {
	copied := make(Snapshot, len(s))
	for url, status := range s {
		copied[url] = status
	}
	return copied
}
