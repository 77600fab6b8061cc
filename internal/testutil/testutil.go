// Package testutil provides test environment setup and utilities for internal package tests.
package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mootechpic/identity/internal/api"
	"github.com/mootechpic/identity/internal/database"
	"github.com/mootechpic/identity/internal/service"
	"github.com/mootechpic/identity/internal/tokens"
)

// TestSigningKey is the shared HMAC key used across tests so that tokens
// signed by one helper can be validated by another.
var TestSigningKey = []byte("test-signing-key-0123456789abcdef")

const (
	TestIssuer   = "test.identity.local"
	TestAudience = "test.api.local"
)

// TestEnv provides all dependencies needed for testing
type TestEnv struct {
	DB      *database.SQLiteStore
	Service *service.Service
	Router  http.Handler
	Signer  *tokens.Signer
}

// SetupTestEnv creates an isolated test environment with in-memory SQLite
func SetupTestEnv(
	t *testing.T,
) *TestEnv {
	t.Helper()

	// create in-memory SQLite database
	db := database.NewSQLiteStore(":memory:")

	signer := NewTestSigner(t, time.Hour)

	// create service
	svc := service.New(
		db.CredentialStore(),
		signer,
		service.PasswordModeTesting,
	)

	// setup cleanup
	t.Cleanup(func() {
		_ = db.Close()
	})

	return &TestEnv{
		DB:      db,
		Service: svc,
		Signer:  signer,
	}
}

// SetupTestEnvWithRouter creates TestEnv and configures the API router
func SetupTestEnvWithRouter(
	t *testing.T,
) *TestEnv {
	t.Helper()
	env := SetupTestEnv(t)
	a := api.New(env.Service, env.Signer)
	env.Router = a.Router()
	return env
}

// NewTestSigner builds a signer on the shared test key with the given access
// token lifetime.
func NewTestSigner(
	t *testing.T,
	accessTTL time.Duration,
) *tokens.Signer {
	t.Helper()
	signer, err := tokens.NewSigner(tokens.Config{
		Key:        TestSigningKey,
		Issuer:     TestIssuer,
		Audience:   TestAudience,
		AccessTTL:  accessTTL,
		RefreshTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to create test signer: %v", err)
	}
	return signer
}

// RegisterTestUser creates a test user in the database
func (env *TestEnv) RegisterTestUser(
	t *testing.T,
	email string,
	password string,
) *service.Account {
	t.Helper()
	account, err := env.Service.Register(email, password)
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return account
}

// SignExpiredAccessToken crafts an access token for the account that is
// correctly signed against the shared test key but expired an hour ago.
func SignExpiredAccessToken(
	t *testing.T,
	account *service.Account,
) string {
	t.Helper()
	now := time.Now()
	claims := tokens.AccessClaims{
		Email: account.Email,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			Issuer:    TestIssuer,
			Audience:  jwt.ClaimStrings{TestAudience},
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(TestSigningKey)
	if err != nil {
		t.Fatalf("failed to sign expired access token: %v", err)
	}
	return signed
}

// LoginTestUser authenticates a test user and returns the issued session
func (env *TestEnv) LoginTestUser(
	t *testing.T,
	email string,
	password string,
) *service.Session {
	t.Helper()
	session, err := env.Service.Login(email, password)
	if err != nil {
		t.Fatalf("failed to login test user: %v", err)
	}
	return session
}
