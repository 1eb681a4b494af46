package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewSelectionToken returns a 48-character hex token for a selection session.
// Tokens are bearer capabilities, so they come from crypto/rand, not uuid.
func NewSelectionToken() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
