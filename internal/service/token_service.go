package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"authgate/internal/model"
)

// TokenService issues and verifies the signed bearer tokens handed out on
// login. The signing secret and TTL are injected at construction; the same
// secret must be used for issuance and verification for the process lifetime.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("signing secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// TTL reports the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token carrying the user's identity claims, expiring TTL from now.
func (s *TokenService) Issue(user model.User) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"user_type":  user.UserType,
		"iat":        now.Unix(),
		"exp":        now.Add(s.ttl).Unix(),
	})

	return token.SignedString(s.secret)
}

// Verify decodes a presented token string. Malformed, badly signed and expired
// tokens all fail with the same model.ErrInvalidToken so callers cannot tell
// an expired token apart from a forged one.
func (s *TokenService) Verify(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["user_id"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	claims.FirstName, _ = claimsMap["first_name"].(string)
	claims.LastName, _ = claimsMap["last_name"].(string)
	claims.UserType, _ = claimsMap["user_type"].(string)

	if claims.UserID == "" || claims.Email == "" {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}
