package batch

import (
	"net/url"
	"strings"
)

// Stdin is the source name that reads HTML from standard input.
const Stdin = "-"

// IsURL reports whether source names an http or https URL.
func IsURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// host returns the host of a URL source, or "" if it has none.
func host(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
