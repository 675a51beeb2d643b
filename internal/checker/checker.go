package checker

import (
	"context"
	"log/slog"
	"net/url"

	"SiteWatch/internal/domain"
)

type DirectProber interface {
	Probe(ctx context.Context, rawURL string) domain.Status
}

type ContextProber interface {
	Probe(ctx context.Context, originURL string) domain.Status
}

type Denylist interface {
	IsDenied(hostname string) bool
	Deny(ctx context.Context, raw string)
}

// Checker resolves one site to a final status: denylist lookup, direct
// probe, then the in-context fallback, memoizing origins that cannot be
// probed at all.
type Checker struct {
	direct    DirectProber
	inContext ContextProber
	denylist  Denylist
	logger    *slog.Logger
}

func New(direct DirectProber, inContext ContextProber, denylist Denylist, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		direct:    direct,
		inContext: inContext,
		denylist:  denylist,
		logger:    logger,
	}
}

func (c *Checker) Check(ctx context.Context, site domain.Site) domain.Status {
	u, err := url.Parse(site.URL)
	if err != nil {
		// Cannot even form a request.
		return domain.StatusUnsupported
	}
	hostname := u.Hostname()

	// Memoized futile origins are skipped without any network or tab
	// operation.
	if c.denylist.IsDenied(hostname) {
		c.logger.Debug("skipping denied hostname", "hostname", hostname)
		return domain.StatusUnsupported
	}

	// Such schemes can never be probed; remember that now instead of
	// rediscovering it every cycle.
	if domain.SchemeDisallowed(u.Scheme) {
		c.denylist.Deny(ctx, hostname)
		return domain.StatusUnsupported
	}

	status := c.direct.Probe(ctx, site.URL)
	if status != domain.StatusUnsupported {
		return status
	}

	origin := u.Scheme + "://" + u.Host
	status = c.inContext.Probe(ctx, origin)
	if status == domain.StatusUnsupported {
		c.denylist.Deny(ctx, hostname)
	}

	return status
}
