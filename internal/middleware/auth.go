// Package middleware carries the HTTP middlewares the router composes.
// Authentication itself belongs to the external provider; this only
// verifies its access tokens and extracts the user id.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/relately/backend/pkg/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth verifies the provider's HS256 bearer token and stores the subject
// user id in the request context.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				utils.RespondError(w, http.StatusUnauthorized, "no authorization header")
				return
			}

			if len(tokenString) > 7 && strings.EqualFold(tokenString[:7], "bearer ") {
				tokenString = tokenString[7:]
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				utils.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, "invalid user id in token")
				return
			}

			userID, err := uuid.Parse(sub)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "invalid user id format")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID reads the authenticated user id set by Auth.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID injects a user id directly; test helper for handlers that sit
// behind Auth in production.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
