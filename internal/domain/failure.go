package domain

// FailureKind is the structured classification of a failed probe attempt.
// Probers resolve it into a Status; it never leaves the probing layer.
type FailureKind string

const (
	// FailurePolicyBlocked is a request rejected by a security policy
	// before it reached the remote server. Indistinguishable from genuine
	// unreachability at the transport level, so it is never reported as
	// down without escalation.
	FailurePolicyBlocked FailureKind = "policy-blocked"
	// FailureTransport is a connection-level failure: refused, reset,
	// unresolvable host.
	FailureTransport FailureKind = "transport-error"
	FailureTimeout   FailureKind = "timeout"
	// FailureInvalid means the request could not even be formed
	// (malformed URL, bad method).
	FailureInvalid FailureKind = "invalid-request"
)

// disallowedSchemes are schemes a network probe can never succeed against:
// internal browser pages and local files.
var disallowedSchemes = map[string]bool{
	"about":            true,
	"chrome":           true,
	"chrome-extension": true,
	"chrome-error":     true,
	"edge":             true,
	"moz-extension":    true,
	"devtools":         true,
	"view-source":      true,
	"file":             true,
}

func SchemeDisallowed(scheme string) bool {
	return disallowedSchemes[scheme]
}
