package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	helper "github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
)

// Context keys to store admin information
type contextKey string

const (
	sessionKey   contextKey = "session"
	requestIDKey contextKey = "request_id"
)

// Session is the signed-in admin, taken from the access token.
type Session struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Uid         string `json:"uid"`
}

// UserLookup finds the admin a token was issued to. A token stops working
// once it is no longer the one stored on the user (logout, newer login).
type UserLookup interface {
	Get(ctx context.Context, key string) (models.User, error)
}

// Authentication middleware for Gorilla Mux
func Authentication(issuer *helper.TokenIssuer, users UserLookup) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, msg := bearerToken(r)
			if msg != "" {
				helper.Failure(w, http.StatusUnauthorized, msg)
				return
			}

			claims, err := issuer.ValidateToken(tokenString, helper.AccessToken)
			if err != nil {
				helper.Failure(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			if users != nil {
				user, err := users.Get(r.Context(), claims.Uid)
				if err != nil || user.Token == nil || *user.Token != tokenString {
					helper.Failure(w, http.StatusUnauthorized, "Session has ended, please sign in again")
					return
				}
			}

			ctx := context.WithValue(r.Context(), sessionKey, Session{
				Email:       claims.Email,
				DisplayName: claims.DisplayName,
				Uid:         claims.Uid,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken reads "Authorization: Bearer <token>". EventSource cannot set
// headers, so an access_token query parameter is accepted as well.
func bearerToken(r *http.Request) (string, string) {
	clientToken := r.Header.Get("Authorization")
	if clientToken == "" {
		if t := r.URL.Query().Get("access_token"); t != "" {
			return t, ""
		}
		return "", "No Authorization header provided"
	}

	// Token format should be "Bearer <token>"
	tokenParts := strings.Fields(clientToken)
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", "Invalid Authorization format"
	}
	return tokenParts[1], ""
}

// GetSessionFromContext retrieves the admin session from the request context
func GetSessionFromContext(r *http.Request) (Session, bool) {
	s, ok := r.Context().Value(sessionKey).(Session)
	return s, ok
}
