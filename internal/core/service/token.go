package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type userClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func signToken(secret string, ttl time.Duration, email string) (string, error) {
	if secret == "" {
		return "", errors.New("token secret is empty")
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}

	now := time.Now()
	claims := userClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates an access token and returns the email it was issued
// for.
func ParseToken(tokenStr, secret string) (string, error) {
	if tokenStr == "" {
		return "", errors.New("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &userClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*userClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Email, nil
}
