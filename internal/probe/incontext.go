package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"SiteWatch/internal/browser"
	"SiteWatch/internal/domain"
)

// TabHost is the slice of the browser debugger the in-context prober needs.
type TabHost interface {
	ListTabs(ctx context.Context) ([]browser.Tab, error)
	Evaluate(ctx context.Context, tab browser.Tab, expression string) (json.RawMessage, error)
}

// internalPagePrefixes are tab URLs that cannot host a network probe:
// browser-internal pages and browser-rendered error pages.
var internalPagePrefixes = []string{
	"chrome://",
	"chrome-extension://",
	"chrome-error://",
	"devtools://",
	"edge://",
	"about:",
	"view-source:",
}

// InContext is the fallback probing tier: it runs a credentialed GET from
// inside a tab already navigated to the target origin, so the request is
// same-origin and cannot be policy-blocked the way a direct probe can.
type InContext struct {
	host   TabHost
	logger *slog.Logger
}

func NewInContext(host TabHost, logger *slog.Logger) *InContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &InContext{host: host, logger: logger}
}

type inContextResult struct {
	OK      bool   `json:"ok"`
	Status  int    `json:"status"`
	Failure string `json:"failure"`
	Message string `json:"message"`
}

// Probe checks originURL from a live tab on that origin. Requires the user
// to have the site open; without a matching tab the answer is down, a
// deliberate limitation of this tier.
func (p *InContext) Probe(ctx context.Context, originURL string) domain.Status {
	tabs, err := p.host.ListTabs(ctx)
	if err != nil {
		// Mechanism failure, not evidence of downtime.
		p.logger.Debug("tab listing failed", "origin", originURL, "error", err)
		return domain.StatusUnsupported
	}

	tab, ok := p.selectTab(tabs, originURL)
	if !ok {
		return domain.StatusDown
	}

	payload, err := p.host.Evaluate(ctx, tab, probeExpression(originURL))
	if err != nil {
		// Injection errors (permissions, closed tab race) fold into
		// unsupported to avoid reporting a false down.
		p.logger.Debug("in-context evaluation failed",
			"origin", originURL,
			"tab_id", tab.ID,
			"error", err,
		)
		return domain.StatusUnsupported
	}

	if len(payload) == 0 || string(payload) == "null" {
		return domain.StatusDown
	}

	var result inContextResult
	if err := json.Unmarshal(payload, &result); err != nil {
		p.logger.Debug("in-context probe returned malformed payload",
			"origin", originURL,
			"payload", string(payload),
		)
		return domain.StatusDown
	}

	if result.Failure != "" {
		// No further fallback tier exists, so an irresolvable result is
		// handed back as unsupported for the orchestrator to memoize.
		p.logger.Debug("in-context probe irresolvable",
			"origin", originURL,
			"failure", result.Failure,
			"message", result.Message,
		)
		return domain.StatusUnsupported
	}

	if result.Status >= 200 && result.Status < 300 {
		return domain.StatusUp
	}
	return domain.StatusDown
}

func (p *InContext) selectTab(tabs []browser.Tab, originURL string) (browser.Tab, bool) {
	for _, tab := range tabs {
		if !strings.HasPrefix(tab.URL, originURL) {
			continue
		}
		if !strings.HasPrefix(tab.URL, "http://") && !strings.HasPrefix(tab.URL, "https://") {
			continue
		}
		if isInternalPage(tab.URL) {
			continue
		}
		return tab, true
	}
	return browser.Tab{}, false
}

func isInternalPage(url string) bool {
	for _, prefix := range internalPagePrefixes {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}

// probeExpression builds the script injected into the tab. It resolves to a
// structured object so failure classification never depends on free-text
// back on the Go side; message pattern matching happens only inside the
// script, where no structured signal exists at all.
func probeExpression(originURL string) string {
	root := strings.TrimSuffix(originURL, "/") + "/"
	return fmt.Sprintf(`fetch(%q, {method: 'GET', cache: 'no-store', credentials: 'include'})
	.then((r) => ({ok: r.ok, status: r.status}))
	.catch((e) => {
		const msg = String((e && e.message) || e);
		let failure = 'transport-error';
		if (e && e.name === 'AbortError') failure = 'timeout';
		else if (/cors|cross-origin|blocked/i.test(msg)) failure = 'policy-blocked';
		return {failure: failure, message: msg};
	})`, root)
}
