package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// SetPrincipal returns a context carrying the authenticated principal. Used by auth middleware.
func SetPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated principal from the context, if present.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	p, ok := PrincipalFromContext(ctx)
	return p.UserID, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the principal in the request context.
// A missing or malformed header and an invalid token are reported with different messages; all respond 401.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteStatusError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}
			parts := strings.Split(auth, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				h.WriteStatusError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}
			principal, err := verifier.Verify(parts[1])
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "err", err)
				h.WriteStatusError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetPrincipal(r.Context(), principal))
			next(w, r)
		}
	}
}

// RequirePermission returns a wrapper that rejects principals lacking perm with 403.
// It must run inside RequireAuth.
func RequirePermission(perm domain.Permission) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				h.WriteStatusError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !principal.HasRight(perm) {
				h.WriteStatusError(w, http.StatusForbidden, "forbidden")
				return
			}
			next(w, r)
		}
	}
}
