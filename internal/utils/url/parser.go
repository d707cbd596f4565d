package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL performs comprehensive URL validation
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %s", parsed.Scheme)
	}

	if parsed.Hostname() == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// StoreID derives the store identifier from a product URL: the second dot-delimited label
// of the hostname, so www.amazon.com and smile.amazon.com both map to "amazon".
// Two-label hosts such as newegg.com use their first label.
func StoreID(urlStr string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(urlStr))
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", fmt.Errorf("invalid URL: missing host")
	}

	labels := strings.Split(host, ".")
	switch {
	case len(labels) >= 3:
		return labels[1], nil
	case len(labels) == 2:
		return labels[0], nil
	default:
		return "", fmt.Errorf("invalid URL: host %q has no store label", host)
	}
}
