package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AdminRole     = "admin"
	AdminTokenTTL = 24 * time.Hour
)

var ErrMissingSecret = errors.New("JWT_SECRET non configuré")

// GenerateAdminJWT signe un jeton HS256 valable 24h pour le tableau de bord
func GenerateAdminJWT(secret string, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": AdminRole,
		"iat":  now.Unix(),
		"exp":  now.Add(AdminTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT valide la signature et l'expiration puis retourne les claims
func ParseJWT(secret, tokenString string) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("claims invalides")
	}
	return claims, nil
}
