package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/app-sre/dbconsole/pkg/render"
)

var timeoutBody = func() string {
	content, _ := json.Marshal(render.View{Kind: render.KindError, Message: "Request timed out"})
	return string(content)
}()

// Timeout bounds the time a console request may spend waiting on the
// backend. A request that runs out of time gets an error view.
func Timeout(timeout time.Duration) Middleware {
	return func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, timeout, timeoutBody)
	}
}
