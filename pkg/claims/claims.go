package claims

import jwt "github.com/dgrijalva/jwt-go"

type contextKey string

const (
	TokenContextKey contextKey = "token"
)

type Claims struct {
	User struct {
		Account string `json:"account"`
		ID      string `json:"id"`
		Role    int    `json:"role"`
	} `json:"user"`
	SessionID string `json:"sid"`
	/* сырой токен кладёт middleware, чтобы logout/extend могли
	сверить его с сохранённой сессией */
	Raw string `json:"-"`
	jwt.StandardClaims
}
