// Package tokens signs, validates, and generates the credentials issued by
// the identity service: HS256-signed access tokens and opaque random
// refresh tokens.
package tokens

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrTokenInvalid)
)

// Config holds the process-wide signing configuration. It is loaded once at
// startup and never mutated afterwards.
type Config struct {
	Key        []byte
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Signer issues and validates access tokens with a single symmetric key and
// a single pinned algorithm.
type Signer struct {
	config Config
}

func NewSigner(cfg Config) (*Signer, error) {
	if len(cfg.Key) == 0 {
		return nil, errors.New("signing key is empty")
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("issuer and audience are required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	return &Signer{config: cfg}, nil
}

// RefreshExpiry returns the expiration timestamp for a refresh token issued
// now.
func (s *Signer) RefreshExpiry() time.Time {
	return time.Now().Add(s.config.RefreshTTL)
}
