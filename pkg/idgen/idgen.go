// Package idgen generates identifiers for users and sessions.
package idgen

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// SessionEntropyBytes is the number of random bytes behind a session ID.
	SessionEntropyBytes = 25
	// SessionIDLength is the number of characters in an encoded session ID.
	SessionIDLength = 40
)

var sessionEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// SessionID creates a new unguessable session identifier: 25 bytes from
// crypto/rand encoded as 40 lowercase base32 characters.
func SessionID() (string, error) {
	bytes := make([]byte, SessionEntropyBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	return strings.ToLower(sessionEncoding.EncodeToString(bytes)), nil
}

// UserID creates a new random user identifier.
func UserID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate user ID: %w", err)
	}
	return id.String(), nil
}
