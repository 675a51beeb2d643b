package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/miekg/dns"
)

// Checker answers whether a hostname resolves at all. Used as an advisory
// preflight when a site is added; never part of the availability check
// protocol.
type Checker struct {
	server  string
	timeout time.Duration
	logger  *slog.Logger
}

func New(server string, timeout time.Duration, logger *slog.Logger) *Checker {
	if server == "" {
		server = "8.8.8.8:53"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Checker{
		server:  server,
		timeout: timeout,
		logger:  logger,
	}
}

// Resolves reports whether hostname has an A or AAAA record.
func (c *Checker) Resolves(ctx context.Context, hostname string) bool {
	for _, recordType := range []uint16{dns.TypeA, dns.TypeAAAA} {
		if c.query(ctx, hostname, recordType) {
			return true
		}
	}
	return false
}

func (c *Checker) query(ctx context.Context, hostname string, recordType uint16) bool {
	client := &dns.Client{
		Timeout: c.timeout,
	}

	msg := dns.Msg{}
	msg.SetQuestion(dns.Fqdn(hostname), recordType)

	response, _, err := client.ExchangeContext(ctx, &msg, c.server)
	if err != nil {
		c.logger.Debug("DNS query failed", "hostname", hostname, "error", err)
		return false
	}

	if response.Rcode != dns.RcodeSuccess {
		return false
	}

	return len(response.Answer) > 0
}
