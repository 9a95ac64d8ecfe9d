package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"portfolio-web/pkg/response"
)

// The session token is carried as an explicit context value, never read
// from ambient storage. The backend validates it; this service only
// forwards it.

type tokenKey struct{}

const TokenCookie = "portfolio_token"

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func Token(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)

	return token
}

// TokenFromRequest prefers an Authorization header over the session
// cookie set by the login handler.
func TokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}

	return ""
}

// Require rejects requests carrying no token. Token validity is the
// backend's call; a stale token surfaces as a backend 401.
func Require(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				log.Warn("Rejected unauthenticated admin request",
					slog.String("path", r.URL.Path),
				)
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(string(response.UNAUTHORIZED), "authentication required"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithToken(r.Context(), token)))
		})
	}
}
