package middleware

import (
	"net/http"
	"strings"

	dbconsole "github.com/app-sre/dbconsole/pkg"
)

// User records the identity set by the authenticating proxy in the request
// context, for the audit trail. Requests without one are anonymous.
func User() Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := strings.TrimSpace(r.Header.Get(forwardedUserHeader))
			if user == "" {
				user = dbconsole.AnonymousUser
			}
			h.ServeHTTP(w, r.WithContext(dbconsole.WithUser(r.Context(), user)))
		})
	}
}
