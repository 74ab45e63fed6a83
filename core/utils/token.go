package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dingdong-api/core/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenClaims is the payload carried by access and refresh tokens.
type TokenClaims struct {
	UserID  int64  `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	Scope   string `json:"scope"`
	Sub     string `json:"jti,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(userID int64, isAdmin bool, scope string, sub string, ttl time.Duration) (string, error) {
	cfg := config.Get()

	claims := TokenClaims{
		UserID:  userID,
		IsAdmin: isAdmin,
		Scope:   scope,
		Sub:     sub,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateAndParseToken verifies the signature and expiry, returning the claims.
func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	cfg := config.Get()

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
