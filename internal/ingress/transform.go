package ingress

import (
	"net/url"
	"strings"
)

// RouteParam is the query parameter carrying the percent-encoded logical path
// when a URL has been rewritten into its ingress-safe form.
const RouteParam = "route"

// TransformURL converts a logical resource path into the form that is safe to
// fetch or navigate in the current environment.
//
// The function is idempotent: a path that already carries the route parameter
// comes back unchanged, never double-encoded. Outside ingress mode every path
// is returned as-is. Under ingress, site-local paths become
// "?route=<encoded>" (prefixed with the injected base URL when one is known),
// same-origin absolute URLs are transformed by their path component, and
// foreign-origin URLs are left for the browser. Malformed input falls back to
// the input itself; TransformURL never fails.
func TransformURL(p Probe, logicalPath string) string {
	if hasRouteParam(logicalPath) {
		return logicalPath
	}
	if !IsIngressMode(p) {
		return logicalPath
	}

	target := logicalPath
	if isAbsoluteURL(target) {
		u, err := url.Parse(target)
		if err != nil {
			return logicalPath
		}
		if originOf(u) != p.CurrentOrigin() {
			return logicalPath
		}
		target = u.Path
	}

	return p.InjectedBaseURL() + "?" + RouteParam + "=" + url.QueryEscape(target)
}

// DecodeRoute recovers the logical path from a transformed URL. The second
// return value is false when the input carries no route parameter.
func DecodeRoute(transformed string) (string, bool) {
	i := strings.IndexByte(transformed, '?')
	if i < 0 {
		return "", false
	}
	q, err := url.ParseQuery(transformed[i+1:])
	if err != nil || !q.Has(RouteParam) {
		return "", false
	}
	return q.Get(RouteParam), true
}

func hasRouteParam(s string) bool {
	i := strings.IndexByte(s, '?')
	if i < 0 {
		return false
	}
	q, err := url.ParseQuery(s[i+1:])
	if err != nil {
		// Unparseable query: a raw marker is still treated as present so a
		// second transform can never stack encodings.
		return strings.Contains(s[i+1:], RouteParam+"=")
	}
	return q.Has(RouteParam)
}

// isAbsoluteURL reports whether s starts with a URL scheme such as "https:"
// or "mailto:". Scheme-carrying targets are never treated as site-local.
func isAbsoluteURL(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			return i > 0
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return false
}

func originOf(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}
