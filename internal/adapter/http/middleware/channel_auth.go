package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/api-sage/minibank-core/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// ChannelAuth authenticates the calling channel with HTTP basic auth.
// The channel key is stored as a bcrypt hash so a leaked configuration
// never exposes the plaintext key.
func ChannelAuth(channelID, channelKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channelID == "" || channelKeyHash == "" {
				logger.Error("channel auth middleware missing server configuration", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "server auth configuration is missing", http.StatusInternalServerError)
				return
			}

			id, key, ok := r.BasicAuth()
			if !ok || !secureEqual(id, channelID) || !keyMatches(channelKeyHash, key) {
				logger.Info("channel auth middleware unauthorized request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "invalid_or_missing",
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func keyMatches(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
