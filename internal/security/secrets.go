package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

func HashSecretSHA256(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Fingerprint identifies a token in logs without revealing it.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	return HashSecretSHA256(token)[:12]
}

// SecretsEqual compares two secrets in constant time.
func SecretsEqual(expected, presented string) bool {
	return ConstantTimeEqualHex(HashSecretSHA256(expected), HashSecretSHA256(presented))
}

func ConstantTimeEqualHex(aHex, bHex string) bool {
	a, err1 := hex.DecodeString(aHex)
	b, err2 := hex.DecodeString(bHex)
	if err1 != nil || err2 != nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
