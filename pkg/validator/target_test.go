package validator

import "testing"

func TestValidateSiteURL(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?q=1", true},
		{"  https://example.com  ", true},
		{"ftp://example.com", false},
		{"file:///etc/hosts", false},
		{"example.com", false},
		{"https://", false},
		{"", false},
		{"   ", false},
		{"http://[::1", false},
	}

	for _, tc := range cases {
		if got := ValidateSiteURL(tc.raw); got != tc.want {
			t.Errorf("ValidateSiteURL(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestHostname(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"https://Example.COM/path", "example.com"},
		{"http://example.com:8080", "example.com"},
		{"example.com", "example.com"},
		{"  Mixed-Case.Example  ", "mixed-case.example"},
		{"chrome://settings", "chrome://settings"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		if got := Hostname(tc.raw); got != tc.want {
			t.Errorf("Hostname(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
