package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/belledame/storefront/pkg/logger"
)

// AdminPINHeader carries the shared admin secret on every mutating call.
const AdminPINHeader = "x-admin-pin"

// RequireAdmin gates a handler behind the shared-secret PIN. A missing
// or mismatching header short-circuits with 401 before any data access;
// the response never echoes the expected value.
func RequireAdmin(pin string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminPINHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(pin)) != 1 {
				logger.Logger.Warn().
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Admin PIN rejected")
				respondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}
