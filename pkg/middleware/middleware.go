package middleware

import (
	"net/http"
)

const forwardedUserHeader = "X-Forwarded-User"

type Middleware func(http.Handler) http.Handler
