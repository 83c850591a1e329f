package helper

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"math/big"
)

const verifierChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// GenerateCodeVerifier returns a high-entropy PKCE code verifier built from
// the unreserved character set RFC 7636 allows.
func GenerateCodeVerifier(length int) (string, error) {
	return randomString(length)
}

// GenerateState returns a CSRF state string for the authorization redirect.
func GenerateState(length int) (string, error) {
	return randomString(length)
}

// CodeChallengeS256 derives the S256 code challenge: SHA-256 of the verifier,
// base64url-encoded without padding.
func CodeChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))

	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func randomString(length int) (string, error) {
	out := make([]byte, length)

	max := big.NewInt(int64(len(verifierChars)))

	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}

		out[i] = verifierChars[n.Int64()]
	}

	return string(out), nil
}
