package tokens_test

import (
	"testing"
	"time"

	"github.com/mootechpic/identity/internal/tokens"
)

func TestNewSigner_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	valid := tokens.Config{
		Key:        testKey,
		Issuer:     "test.issuer",
		Audience:   "test.audience",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}

	tests := []struct {
		name   string
		mutate func(c *tokens.Config)
	}{
		{"empty key", func(c *tokens.Config) { c.Key = nil }},
		{"empty issuer", func(c *tokens.Config) { c.Issuer = "" }},
		{"empty audience", func(c *tokens.Config) { c.Audience = "" }},
		{"zero access ttl", func(c *tokens.Config) { c.AccessTTL = 0 }},
		{"negative refresh ttl", func(c *tokens.Config) { c.RefreshTTL = -time.Hour }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if _, err := tokens.NewSigner(cfg); err == nil {
				t.Error("expected constructor error")
			}
		})
	}

	if _, err := tokens.NewSigner(valid); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestRefreshExpiry(t *testing.T) {
	t.Parallel()
	signer := newTestSigner(t, testKey, "test.issuer", "test.audience")

	expiry := signer.RefreshExpiry()
	remaining := time.Until(expiry)
	if remaining < 23*time.Hour || remaining > 25*time.Hour {
		t.Errorf("RefreshExpiry %v not near the configured 24h lifetime", remaining)
	}
}
