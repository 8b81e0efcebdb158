package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parlor-dev/parlor/internal/domain"
	internal_errors "github.com/parlor-dev/parlor/internal/errors"
	jwt_internal "github.com/parlor-dev/parlor/internal/jwt"
	"github.com/parlor-dev/parlor/internal/utils"
)

// Key to store the authenticated user in the request context
type key int

const userClaimsKey key = 0

// NeedAuth authenticates the request from the accessToken cookie, falling back
// to an Authorization bearer header for non-browser clients, and stores the
// authenticated principal in the request context.
func NeedAuth(jwtService jwt_internal.JwtService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractToken(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			token, err := jwtService.DecodeToken(tokenStr)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			user, err := principalFromClaims(token.Claims.(jwt.MapClaims))
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, user)
			next(w, r.WithContext(ctx))
		}
	}
}

func extractToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie("accessToken")
	if err == nil {
		return cookie.Value, nil
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer "), nil
	}
	return "", &internal_errors.ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized}
}

func principalFromClaims(claims jwt.MapClaims) (*domain.AuthorSnapshot, error) {
	uid, ok := claims["uid"].(string)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	return &domain.AuthorSnapshot{AuthorId: id, Username: username, Email: email}, nil
}

// GetUserFromContext retrieves the authenticated principal, or nil when the
// request did not pass through NeedAuth.
func GetUserFromContext(r *http.Request) *domain.AuthorSnapshot {
	user, ok := r.Context().Value(userClaimsKey).(*domain.AuthorSnapshot)
	if !ok {
		return nil
	}
	return user
}
