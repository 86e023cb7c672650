package http

import (
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/lavenshop/cart-service/pkg/errors"
	"github.com/lavenshop/cart-service/pkg/httputil"
	"github.com/lavenshop/cart-service/pkg/logger"
)

// SessionHeader carries the shopper's anonymous session id. The storefront
// generates it client-side and sends it on every cart call.
const SessionHeader = "X-Session-ID"

const maxSessionIDLen = 128

// RequireSession extracts the session id from the request header and puts
// it on the context. Requests without one are rejected before they reach a
// handler.
func RequireSession(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if sessionID == "" {
				httputil.WriteError(w, r, apperrors.InvalidInput("missing "+SessionHeader+" header"), l)
				return
			}
			if len(sessionID) > maxSessionIDLen || strings.ContainsAny(sessionID, " \t\r\n") {
				httputil.WriteError(w, r, apperrors.InvalidInput("malformed "+SessionHeader+" header"), l)
				return
			}

			ctx := logger.WithSessionID(r.Context(), sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
