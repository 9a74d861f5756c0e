package ingress

import (
	"net/http"
	"strings"
)

// ingressMarker is the path segment Home Assistant prepends when the add-on
// is served through the supervisor's ingress proxy. The token between the
// marker and the add-on's own path is assigned per session and cannot be
// known at build time.
const ingressMarker = "/api/hassio_ingress/"

// ingressHosts are hostnames that only ever occur behind the ingress proxy.
var ingressHosts = map[string]bool{
	"homeassistant":       true,
	"homeassistant.local": true,
	"hassio":              true,
	"hassio.local":        true,
	"supervisor":          true,
}

// Probe exposes the ambient environment signals the ingress detector and the
// URL transformer need. Handlers use RequestProbe; tests use StaticProbe.
type Probe interface {
	// CurrentOrigin returns scheme://host of the page being served.
	CurrentOrigin() string
	// CurrentPath returns the externally visible request path, which under
	// ingress includes the token prefix.
	CurrentPath() string
	// InjectedBaseURL returns the configured ingress base URL, or "" when
	// none was injected.
	InjectedBaseURL() string
}

// StaticProbe is a Probe with fixed values.
type StaticProbe struct {
	Origin  string
	Path    string
	BaseURL string
}

func (p StaticProbe) CurrentOrigin() string   { return p.Origin }
func (p StaticProbe) CurrentPath() string     { return p.Path }
func (p StaticProbe) InjectedBaseURL() string { return p.BaseURL }

// RequestProbe derives the environment signals from an incoming request.
// The supervisor forwards the external path in the X-Ingress-Path header;
// when present it doubles as the injected base URL unless one was configured
// explicitly.
func RequestProbe(r *http.Request, configuredBase string) Probe {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}

	base := configuredBase
	ingressPath := r.Header.Get("X-Ingress-Path")
	if base == "" {
		base = ingressPath
	}

	path := r.URL.Path
	if ingressPath != "" {
		path = ingressPath
	}

	return StaticProbe{
		Origin:  scheme + "://" + r.Host,
		Path:    path,
		BaseURL: base,
	}
}

// IsIngressMode reports whether the app is being served through the ingress
// proxy. True when the visible path carries the ingress marker, the hostname
// is one only the proxy uses, or a base URL has been injected.
func IsIngressMode(p Probe) bool {
	if strings.Contains(p.CurrentPath(), ingressMarker) {
		return true
	}
	if p.InjectedBaseURL() != "" {
		return true
	}
	host := p.CurrentOrigin()
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return ingressHosts[host]
}
