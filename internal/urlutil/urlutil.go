package urlutil

import (
	"net/url"
	"strings"
)

// BuildAbsolute builds an absolute URL from a base origin and a path.
func BuildAbsolute(base, path string) string {
	base = NormalizeBaseURL(base)
	if path == "" {
		return base
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return base + path
	}
	return base + "/" + path
}

// NormalizeBaseURL trims whitespace and trailing slashes.
func NormalizeBaseURL(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/")
}

// IsAbsolute reports whether raw has an http(s) scheme and a host.
func IsAbsolute(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// SameOrigin reports whether target is served from the same scheme and host
// as base.
func SameOrigin(base, target string) bool {
	b, err := url.Parse(NormalizeBaseURL(base))
	if err != nil || b.Host == "" {
		return false
	}
	t, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return false
	}
	return strings.EqualFold(b.Scheme, t.Scheme) && strings.EqualFold(b.Host, t.Host)
}

// HasPath reports whether target's path starts with prefix.
func HasPath(target, prefix string) bool {
	t, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return false
	}
	return strings.HasPrefix(t.Path, prefix)
}
