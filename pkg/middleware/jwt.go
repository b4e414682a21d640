package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	"motoshop/pkg/claims"
	"motoshop/pkg/session"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
)

var (
	noSessUrls = map[string]string{
		"/api/register":                         http.MethodPost,
		"/api/login":                            http.MethodPost,
		"/api/products":                         http.MethodGet,
		"/api/products/{product_id:[a-fA-F0-9]+}": http.MethodGet,
	}
)

// CheckJWT verifies the signature and expiry of the bearer token and
// then requires it to still be listed in the user's stored sessions, so
// an unexpired token dies the moment it is revoked or rotated away.
func CheckJWT(sessionStore session.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := mux.CurrentRoute(r)
			template, err := route.GetPathTemplate()

			if err != nil {
				http.Error(w, "Route not found", http.StatusNotFound)
				return
			}

			if method, ok := noSessUrls[template]; ok && method == r.Method {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(auth, "Bearer ")

			hashSecretGetter := func(token *jwt.Token) (interface{}, error) {
				method, ok := token.Method.(*jwt.SigningMethodHMAC)
				if !ok || method.Alg() != "HS256" {
					http.Error(w, "bad sign method", http.StatusUnauthorized)
					return nil, nil
				}
				JWTSecret := os.Getenv("JWT_SECRET")
				return []byte(JWTSecret), nil
			}

			_claims_ := &claims.Claims{}

			_token_, err := jwt.ParseWithClaims(token, _claims_, hashSecretGetter)
			if err != nil || !_token_.Valid || _claims_.User.ID == "" || _claims_.SessionID == "" {
				http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			ok, err := sessionStore.IsValid(_claims_.User.ID, _claims_.SessionID, token)
			if err != nil || !ok {
				http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			_claims_.Raw = token

			ctx := context.WithValue(r.Context(), claims.TokenContextKey, _claims_)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
