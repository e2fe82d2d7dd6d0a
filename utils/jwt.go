package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"coladay/config"
	"coladay/models"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "coladay-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT session token for a wallet address.
// The address is carried in the subject claim; the token expires after the
// specified duration.
func GenerateToken(address models.Address, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": string(address),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractAddressFromToken extracts the wallet address (subject) from a valid
// JWT token string.
func ExtractAddressFromToken(tokenString string) (models.Address, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token has no subject")
	}
	addr := models.Address(sub)
	if !addr.Valid() {
		return "", errors.New("token subject is not a wallet address")
	}
	return addr, nil
}
