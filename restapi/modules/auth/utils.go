// Package auth provides authentication and authorization for the REST API.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dvinubius/bootcamp-backend/internal/config"
)

var (
	jwtSecret = []byte("change-this-in-production")
	jwtExpire = 24 * time.Hour
)

// Configure sets the token signing parameters. Call once on startup.
func Configure(cfg config.JWTConfig) {
	if cfg.Secret == "" {
		panic("JWT secret cannot be empty")
	}
	jwtSecret = []byte(cfg.Secret)
	if cfg.ExpireHours > 0 {
		jwtExpire = time.Duration(cfg.ExpireHours) * time.Hour
	}
}

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Claims represents JWT claims. The subject carries the account key.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a signed token for an account
func GenerateJWT(accountKey, role string) (string, error) {
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(jwtExpire)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "bootcamp-backend",
			Subject:   accountKey,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateJWT validates a token and returns the claims
func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// GenerateResetToken returns a fresh password reset token and the sha256 hash
// that gets persisted. Only the raw token ever leaves the system.
func GenerateResetToken() (token, hash string) {
	token = uuid.NewString()
	return token, HashToken(token)
}

// HashToken returns the hex sha256 digest of a reset token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
