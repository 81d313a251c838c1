package handler

import (
	"crypto/subtle"
	"net/http"

	"card-bank-api/common"
)

// APIKeyMiddleware guards state-changing routes with a static key carried in
// the x-api-key header. The comparison is constant time.
func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("x-api-key")
			if provided == "" {
				err := common.NewAppError(http.StatusForbidden, "Missing API key", nil)
				err.Send(w)
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				err := common.NewAppError(http.StatusForbidden, "Invalid API key", nil)
				err.Send(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
