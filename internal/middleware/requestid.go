// Package middleware holds the request-scoped HTTP middleware that sits in
// front of the booking handlers.
package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/seatwise/seatwise/internal/logger"
)

const headerRequestID = "X-Request-ID"

// RequestID tags every request with an ID for log correlation. A caller-sent
// X-Request-ID is honored, otherwise one is generated; either way the ID is
// echoed on the response and placed in the context for the logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = generateID()
		}

		ctx := logger.WithRequestID(r.Context(), id)
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// generateID produces 16 random bytes hex-encoded, 32 characters.
func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
