package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	goAccounts "github.com/atharvk9/goAccounts"
)

type accountIDContextKey struct{}

func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDContextKey{}).(string)
	return id, ok && id != ""
}

func SessionGuard(svc *goAccounts.Service, cfg goAccounts.CookieConfig) func(http.Handler) http.Handler {
	name := cfg.Name
	if name == "" {
		name = "token"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if svc == nil {
				rejectUnauthorized(w)
				return
			}

			cookie, err := r.Cookie(name)
			if err != nil || cookie.Value == "" {
				rejectUnauthorized(w)
				return
			}

			accountID, err := svc.ValidateSession(cookie.Value)
			if err != nil {
				rejectUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), accountIDContextKey{}, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(goAccounts.EnvelopeFromError(goAccounts.ErrUnauthorized))
}
