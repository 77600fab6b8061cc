package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Identity is the verified caller identity that protected handlers receive.
// It is the only contract the rest of the backend has with this subsystem.
type Identity struct {
	SubjectID string
	Email     string
	Role      string
}

type identityContextKey struct{}

// IdentityFromContext returns the Identity injected by Authenticate.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}

// Authenticate validates the bearer access token on every request, expiry
// included, and exposes the verified identity to the wrapped handler.
func (a *API) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r)
		if !ok {
			logApiErr(r, "missing bearer token")
			returnError(w, http.StatusUnauthorized, "invalid_token")
			return
		}

		claims, err := a.signer.Validate(tokenStr, true)
		if err != nil {
			// expired and forged tokens are indistinguishable to the client
			logApiErr(r, fmt.Sprintf("access token rejected: %v", err))
			returnError(w, http.StatusUnauthorized, "invalid_token")
			return
		}

		identity := Identity{
			SubjectID: claims.Subject,
			Email:     claims.Email,
			Role:      claims.Role,
		}
		ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a handler on an exact role. It must be wrapped by
// Authenticate; without an identity in context it refuses everything.
func RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok || identity.Role != role {
			returnError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	return strings.TrimPrefix(header, prefix), true
}
