package probe

import (
	"context"
	"errors"
	"net"
	"strings"

	"SiteWatch/internal/domain"
)

// ErrPolicyBlocked marks a request rejected by an egress policy before it
// left the process. Transport wrappers return it so classification has a
// structured signal to key on.
var ErrPolicyBlocked = errors.New("request blocked by policy")

// classifyFailure maps a transport-layer error onto a structured failure
// kind. Structured signals win; the message substring heuristics are a
// last resort for errors that expose nothing better.
func classifyFailure(err error) domain.FailureKind {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrPolicyBlocked) {
		return domain.FailurePolicyBlocked
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return domain.FailureTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.FailureTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return domain.FailureTransport
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return domain.FailureTransport
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "blocked"),
		strings.Contains(msg, "cors"),
		strings.Contains(msg, "cross-origin"):
		return domain.FailurePolicyBlocked
	case strings.Contains(msg, "failed to fetch"),
		strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "eof"):
		return domain.FailureTransport
	}

	return domain.FailureInvalid
}
