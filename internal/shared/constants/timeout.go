package constants

import "time"

const (
	ProbeTimeout     = 30 * time.Second
	InContextTimeout = 15 * time.Second
	DNSTimeout       = 5 * time.Second
	StorageTimeout   = 5 * time.Second
	CheckInterval    = 5 * time.Minute
)
