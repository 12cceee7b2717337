// file: internal/middleware/auth.go
package middleware

import (
	"net/http"
	"net/url"
)

// Authenticator answers whether the current session holds a usable
// token. The auth context implements it.
type Authenticator interface {
	IsAuthenticated() bool
}

// RequireAuth redirects unauthenticated page requests to the sign-in
// page, preserving the requested path for the post-login redirect.
func RequireAuth(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.IsAuthenticated() {
				target := r.URL.Path
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, "/sign-in?next="+url.QueryEscape(target), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
