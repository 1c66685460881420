package integrations

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var hrefRegex = regexp.MustCompile(`(?i)<a\s[^>]*href\s*=\s*["']([^"']+)["']`)

// ParseListing extracts the entry names from an HTML directory listing as
// served by Maven and Ivy repositories (Apache, Nexus, Artifactory). Parent
// links, absolute links, query links and hidden entries are skipped; a
// trailing "/" is removed. Names are returned in document order without
// duplicates.
func ParseListing(body string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, m := range hrefRegex.FindAllStringSubmatch(body, -1) {
		href := html.UnescapeString(m[1])
		if strings.ContainsAny(href, "?#:") || strings.HasPrefix(href, "/") || strings.HasPrefix(href, "..") {
			continue
		}
		name := strings.TrimPrefix(strings.TrimSuffix(href, "/"), "./")
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
		if name == "" || strings.Contains(name, "/") || strings.HasPrefix(name, ".") {
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
