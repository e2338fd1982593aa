package middleware

import (
	"errors"
	"net/http"

	dbconsole "github.com/app-sre/dbconsole/pkg"
	"github.com/app-sre/dbconsole/pkg/render"
)

const internalError = "An internal error has occurred"

// Recovery turns a panicking console handler into an error notice.
func Recovery(cfg *dbconsole.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					err, ok := v.(error)
					if ok && errors.Is(err, http.ErrAbortHandler) {
						panic(err)
					}

					cfg.Logger.Errorf("Recovered from an error: %s", v)
					view := render.View{Kind: render.KindError, Message: internalError}
					if err := render.Respond(w, r, http.StatusInternalServerError, view); err != nil {
						cfg.Logger.Errorf("Unable to write response: %s", err)
					}
				}
			}()
			h.ServeHTTP(w, r)
		})
	}
}
