package middleware

import (
	"fmt"
	"net/http"
	"time"
)

// Timeout bounds the whole request, the outbound search call included.
func Timeout(timeout time.Duration) Middleware {
	message := fmt.Sprintf("Request timed out after %s", timeout)
	return func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, timeout, message)
	}
}
