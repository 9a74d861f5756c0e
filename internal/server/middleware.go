package server

import (
	"net/http"
	"strings"

	"github.com/hadocs/docs-addon/internal/ingress"
)

// decodeRoute rewrites ?route= requests back to the logical path they name
// before routing. Under ingress every in-app URL arrives this way; after the
// rewrite the router sees the same paths it would in direct mode, so no
// handler needs to know about the encoding.
func decodeRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if logical, ok := ingress.DecodeRoute("?" + r.URL.RawQuery); ok {
			// The transformer escapes the entire target, so the decoded
			// route is all path, even when it contains a literal '?'.
			if strings.HasPrefix(logical, "/") {
				r.URL.Path = logical
				r.URL.RawPath = ""
				r.URL.RawQuery = ""
				r.RequestURI = r.URL.RequestURI()
			}
		}
		next.ServeHTTP(w, r)
	})
}
