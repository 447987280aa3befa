package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GenerateSessionToken returns a 64-character hex token from 32 random bytes.
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// StripBearer removes a leading "Bearer " scheme from an Authorization
// header value. Tokens are accepted with or without the prefix.
func StripBearer(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

// GenerateID returns a new UUID string
func GenerateID() string {
	return uuid.New().String()
}
