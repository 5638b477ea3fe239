package services

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint creates a SHA256 hex digest of the text. The cache uses it to
// detect when a chapter's source content has changed since the stored
// translation was produced.
func Fingerprint(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}
