package domain

import (
	"net/url"
	"time"
)

type Site struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSite builds a site for a validated URL. An empty name defaults to the
// URL's hostname.
func NewSite(name, rawURL string) Site {
	site := Site{
		Name:      name,
		URL:       rawURL,
		CreatedAt: time.Now(),
	}

	if site.Name == "" {
		if u, err := url.Parse(rawURL); err == nil {
			site.Name = u.Hostname()
		}
	}
	if site.Name == "" {
		site.Name = rawURL
	}

	return site
}

func (s Site) Hostname() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
