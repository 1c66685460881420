package integrations

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "artifactscout"

	// maxBodySize bounds metadata documents read from a repository.
	maxBodySize = 16 << 20
)

var (
	// ErrNotFound is returned when a document doesn't exist in the repository.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// BasicAuth holds credentials for a private repository.
type BasicAuth struct {
	User     string
	Password string
}

// JoinURL appends slash-separated path segments to base, inserting a single
// "/" between them. Segments are escaped individually.
func JoinURL(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// hostOf extracts the host used for circuit breaker grouping.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}
