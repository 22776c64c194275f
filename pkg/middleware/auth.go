package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/barecheradouane2/ShoppingStorev1/pkg/auth"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/response"
)

type claimsKey struct{}

// Auth rejects requests without a valid Bearer token and stores the parsed
// claims in the request context for downstream handlers.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the JWT claims stored by Auth, or nil.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(claimsKey{}).(*auth.Claims); ok {
		return c
	}
	return nil
}
