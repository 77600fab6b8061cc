// Package service implements the token lifecycle for the identity service:
// credential verification, signed access-token issuance, and single-active
// refresh-token rotation.
package service

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/mootechpic/identity/internal/tokens"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountNotFound     = errors.New("account not found")
	ErrEmailTaken          = errors.New("email already in use")
	ErrTokenInvalid        = errors.New("access token invalid")
	ErrRefreshTokenInvalid = errors.New("refresh token invalid")
	ErrInternal            = errors.New("internal error")
)

// Account roles form a small closed set; new accounts always start as
// RoleUser.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// PasswordMode controls bcrypt cost for password hashing.
// Use PasswordModeProduction for real deployments and PasswordModeTesting
// only in tests.
type PasswordMode int

const (
	// PasswordModeProduction uses bcrypt.DefaultCost for secure password hashing.
	PasswordModeProduction PasswordMode = iota
	// PasswordModeTesting uses bcrypt.MinCost for fast test execution.
	// WARNING: This mode will panic if used outside of go test.
	PasswordModeTesting
)

// Cost returns the bcrypt cost for this mode.
// Panics if PasswordModeTesting is used outside of a test environment.
func (m PasswordMode) Cost() int {
	switch m {
	case PasswordModeTesting:
		// Go injects -test.* flags when running under go test
		for _, arg := range os.Args {
			if strings.HasPrefix(arg, "-test.") {
				log.Println("WARNING: Using insecure password hashing (testing mode)")
				return bcrypt.MinCost
			}
		}
		panic("service: PasswordModeTesting used outside of test environment")
	default:
		return bcrypt.DefaultCost
	}
}

// Service coordinates registration, login, and refresh-token rotation.
// It depends on a CredentialStore for persistence and a tokens.Signer for
// all cryptographic work.
type Service struct {
	store        CredentialStore
	signer       *tokens.Signer
	passwordMode PasswordMode
}

func New(
	store CredentialStore,
	signer *tokens.Signer,
	passwordMode PasswordMode,
) *Service {
	return &Service{
		store:        store,
		signer:       signer,
		passwordMode: passwordMode,
	}
}
