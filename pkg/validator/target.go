package validator

import (
	"net/url"
	"strings"
)

// ValidateSiteURL reports whether raw is a fully-qualified http/https URL
// that a site entry may be created from.
func ValidateSiteURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Hostname() != ""
}

// Hostname extracts the hostname from raw. Accepts either a URL or a bare
// hostname; a bare hostname comes back trimmed and lowercased.
func Hostname(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if u, err := url.Parse(raw); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return strings.ToLower(u.Hostname())
	}

	return strings.ToLower(raw)
}
