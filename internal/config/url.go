package config

import (
	"net/url"
	"strings"
)

// NormalizeBaseURL reduces a user-supplied JIRA URL to scheme://host with no
// trailing slash. A bare hostname is given an https scheme; when no host is
// parsed the first path segment is treated as the host. A blank input stays
// blank.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	scheme := parsed.Scheme
	if scheme == "" {
		scheme = "https"
	}

	host := parsed.Host
	if host == "" {
		host = strings.SplitN(strings.TrimPrefix(parsed.Path, "/"), "/", 2)[0]
	}

	return strings.TrimRight(scheme+"://"+host, "/")
}
