package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateCoordinatePart validates one component of a coordinate (group,
// artifact or version) for safety. Components end up in repository URLs and
// cache keys, so anything that could traverse paths is rejected:
//   - No empty values
//   - No control characters or null bytes
//   - No path traversal sequences (.., /, \)
//   - Maximum length of 256 characters
func ValidateCoordinatePart(kind, value string) error {
	if value == "" {
		return New(ErrCodeInvalidCoordinate, "%s cannot be empty", kind)
	}

	if len(value) > 256 {
		return New(ErrCodeInvalidCoordinate, "%s too long (max 256 characters)", kind)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCoordinate, "%s contains invalid control characters", kind)
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(value, pattern) {
			return New(ErrCodeInvalidCoordinate, "%s contains invalid characters: %q", kind, pattern)
		}
	}

	return nil
}

// groupIDRegex matches reverse-domain group identifiers.
var groupIDRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9._-]*$`)

// ValidateGroupID validates a Maven groupId / Ivy organisation.
func ValidateGroupID(group string) error {
	if err := ValidateCoordinatePart("group", group); err != nil {
		return err
	}
	if !groupIDRegex.MatchString(group) {
		return New(ErrCodeInvalidCoordinate, "invalid group: %q", group)
	}
	return nil
}

// ValidateURL validates a repository URL string.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
