package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies the signed identity tokens. A token binds
// exactly one claim of interest: the caller's email.
type TokenManager struct {
	tokenAuth *jwtauth.JWTAuth
	exp       time.Duration
}

func NewTokenManager(key []byte, exp time.Duration) *TokenManager {
	return &TokenManager{
		tokenAuth: jwtauth.New("HS256", key, nil),
		exp:       exp,
	}
}

// JWTAuth exposes the underlying verifier for the router middleware.
func (tm *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return tm.tokenAuth
}

func (tm *TokenManager) Generate(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(tm.exp).Unix(),
	}
	_, tokenString, err := tm.tokenAuth.Encode(claims)
	return tokenString, err
}

func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}
