package middleware

import (
	"net/http"
)

// Set by an authenticating proxy in front of the service, if any.
const forwardedUserHeader = "X-Forwarded-User"

type Middleware func(http.Handler) http.Handler
