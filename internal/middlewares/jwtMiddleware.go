package middlewares

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"skilltwin/internal/apperrors"
	"skilltwin/internal/utils"
)

// AuthMiddleware accepts a "Bearer <token>" access token and stores the
// account id and role on the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				utils.WriteError(w, apperrors.Unauthenticated("No token, authorization denied"))
				return
			}
			tokenString := strings.TrimSpace(header[len("Bearer "):])
			if tokenString == "" {
				utils.WriteError(w, apperrors.Unauthenticated("No token, authorization denied"))
				return
			}

			claims, err := utils.ParseJWT(secret, tokenString)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected access token")
				utils.WriteError(w, apperrors.Unauthenticated("Token is not valid"))
				return
			}

			ctx := utils.WithIdentity(r.Context(), claims.ID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when the authenticated role matches.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if utils.GetRoleFromContext(r) != role {
				utils.WriteError(w, apperrors.Forbidden("Admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
