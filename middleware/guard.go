package middleware

import (
	"context"
	"net/http"
	"strings"

	courseauth "github.com/coursebook/courseauth"
)

type identityContextKey struct{}

// IdentityFromContext returns the identity installed by [Guard].
func IdentityFromContext(ctx context.Context) (courseauth.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(courseauth.Identity)
	return id, ok
}

// Guard rejects requests without a valid bearer token and installs the
// validated [courseauth.Identity] on the request context. All failure modes
// answer 401 with the same body.
func Guard(engine *courseauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			id, err := engine.Validate(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
