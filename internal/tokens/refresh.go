package tokens

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewRefreshToken returns a fresh opaque refresh token: 32 bytes from the
// system CSPRNG, base64url encoded. The value carries no structure and no
// account data; it is only ever compared against the stored copy.
func NewRefreshToken() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random refresh bytes: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(randomBytes), nil
}
