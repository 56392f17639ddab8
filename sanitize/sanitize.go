// Package sanitize normalizes free-text input before it is written to the
// record store or interpolated into store filter expressions.
package sanitize

import (
	"net/url"
	"strings"
)

const maxTextLength = 10000

// Text trims whitespace, strips ASCII control characters and caps the
// result at 10000 runes. The cap counts runes, not bytes, so multibyte
// characters are never split.
func Text(text string) string {
	trimmed := strings.TrimSpace(text)
	var result strings.Builder
	result.Grow(len(trimmed))
	runes := 0
	for _, r := range trimmed {
		if (r >= 0x00 && r <= 0x1F) || r == 0x7F {
			continue
		}
		if runes == maxTextLength {
			break
		}
		result.WriteRune(r)
		runes++
	}
	return result.String()
}

// Email trims and lower-cases an email address.
func Email(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ID strips a record identifier down to alphanumeric characters. Record
// ids end up inside store filter expressions, and the store's query
// language has no parameterization, so everything else must go.
func ID(id string) string {
	trimmed := strings.TrimSpace(id)
	var result strings.Builder
	result.Grow(len(trimmed))
	for _, r := range trimmed {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// IDs sanitizes each id and drops the ones that end up empty.
func IDs(ids []string) []string {
	sanitized := make([]string, 0, len(ids))
	for _, id := range ids {
		if s := ID(id); s != "" {
			sanitized = append(sanitized, s)
		}
	}
	return sanitized
}

// URL accepts only parsable http/https URLs. Anything else, including
// javascript: and data: schemes, becomes the empty string.
func URL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	return parsed.String()
}

// EscapeFormula backslash-escapes quote characters in a string value
// before it is embedded in a store filter expression.
func EscapeFormula(value string) string {
	escaped := strings.ReplaceAll(value, `'`, `\'`)
	return strings.ReplaceAll(escaped, `"`, `\"`)
}
