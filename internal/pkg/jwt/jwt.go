// Package jwt verifies access tokens issued by the identity service.
// Tokens are HS256 signed with a shared secret; this service never
// issues tokens of its own outside of tests.
package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateAccessToken(userID string, name string, isAdmin bool) (token string, expiresAt int64, err error)
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken mirrors the claim layout the identity service uses.
// Kept for local development and handler tests.
func (j *JWTService) GenerateAccessToken(userID string, name string, isAdmin bool) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":  userID,
		"name":     name,
		"is_admin": isAdmin,
		"type":     "access",
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}
