package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenPurpose scopes a token to a single flow.
type TokenPurpose string

const (
	PurposeSession       TokenPurpose = "session"
	PurposeVerifyEmail   TokenPurpose = "verify_email"
	PurposeResetPassword TokenPurpose = "reset_password"
)

// TokenClaims is the decoded content of a valid token.
type TokenClaims struct {
	Subject   string
	Purpose   TokenPurpose
	ExpiresAt time.Time
}

// JWTManager issues and verifies HS256 tokens.
type JWTManager struct {
	secret []byte
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret)}
}

// GenerateToken creates a signed token for subject that expires after ttl.
func (m *JWTManager) GenerateToken(subject string, purpose TokenPurpose, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     subject,
		"purpose": string(purpose),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken validates tokenString and checks that it was issued for purpose.
// An expired token yields a KindExpired error; anything else invalid yields KindUnauthorized.
func (m *JWTManager) ParseToken(tokenString string, purpose TokenPurpose) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, NewExpired("token has expired")
		}
		return nil, NewUnauthorized("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, NewUnauthorized("invalid token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, NewUnauthorized("token does not contain a valid 'sub' claim")
	}
	if p, _ := claims["purpose"].(string); TokenPurpose(p) != purpose {
		return nil, NewUnauthorized("token was not issued for this purpose")
	}

	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	return &TokenClaims{Subject: sub, Purpose: purpose, ExpiresAt: expiresAt}, nil
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
