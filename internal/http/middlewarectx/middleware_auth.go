// Package middlewarectx holds the HTTP middleware for JWT checks and
// request rate limiting.
//
// JWTMiddleware checks the Authorization header for a valid bearer
// token and puts the authenticated user id into the request context.
// A failed check answers HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/fondosapp/fondos-api/internal/http/response"
	"github.com/fondosapp/fondos-api/internal/lib/jwt"
	"github.com/fondosapp/fondos-api/internal/lib/sl"
)

// Key is the type for request context keys.
type Key string

// User is the context key holding the authenticated user id.
const User Key = "id_usuario"

// JWTMiddleware returns middleware that checks the bearer token in the
// Authorization header.
func JWTMiddleware(tokenMaker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := tokenMaker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), User, claims.IDUsuario)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
