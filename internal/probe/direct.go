package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"SiteWatch/internal/domain"
)

// Direct performs the first probing tier: a minimal existence check against
// the exact site URL, no body transfer, caching disabled.
type Direct struct {
	client *http.Client
	logger *slog.Logger
}

func NewDirect(timeout time.Duration, logger *slog.Logger) *Direct {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Direct{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: false,
					MinVersion:         tls.VersionTLS12,
				},
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				DisableKeepAlives:   true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		logger: logger,
	}
}

// Probe resolves a site URL into up, down, or unsupported. Unsupported
// means the outcome is ambiguous here: genuine downtime and a
// policy-blocked request fail identically at this tier.
func (d *Direct) Probe(ctx context.Context, rawURL string) domain.Status {
	u, err := url.Parse(rawURL)
	if err != nil {
		d.logger.Debug("direct probe got unparseable url", "url", rawURL, "error", err)
		return domain.StatusDown
	}

	if domain.SchemeDisallowed(u.Scheme) {
		return domain.StatusUnsupported
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return domain.StatusDown
	}

	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", "SiteWatch/1.0")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		kind := classifyFailure(err)
		d.logger.Debug("direct probe failed",
			"url", rawURL,
			"failure", kind,
			"error", err,
		)

		switch kind {
		case domain.FailurePolicyBlocked, domain.FailureTransport, domain.FailureTimeout:
			// Ambiguous: escalate instead of guessing down.
			return domain.StatusUnsupported
		default:
			return domain.StatusDown
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return domain.StatusUp
	}
	return domain.StatusDown
}
