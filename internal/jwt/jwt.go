package jwt

import (
	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v4"
	"time"
)

const tokenTTL = time.Hour

func NewTokenAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// CreateJWTToken issues a token for subject that expires after an hour.
func CreateJWTToken(auth *jwtauth.JWTAuth, subject string) (string, error) {

	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": "dataset",
	}

	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiry(claims, time.Now().Add(tokenTTL))

	_, tokenString, err := auth.Encode(claims)

	if err != nil {
		return "", err
	}

	return tokenString, nil
}
