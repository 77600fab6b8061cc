package service

import "time"

// Account is a stored user record. RefreshToken and RefreshExpiration hold
// the single currently-valid refresh token; both are zero until the first
// login. At most one refresh token is ever valid for an account.
type Account struct {
	ID                string
	Email             string
	Name              string
	Secret            []byte
	Role              string
	RefreshToken      string
	RefreshExpiration time.Time
}

// Session is the result of a successful login or refresh: a fresh
// access/refresh token pair and the account they were issued to.
type Session struct {
	AccessToken  string
	RefreshToken string
	Account      *Account
}

// CredentialStore handles persistence of account records and their
// refresh-token state. Lookups return ErrAccountNotFound for missing rows
// and InsertAccount returns ErrEmailTaken on a unique-email conflict.
type CredentialStore interface {
	InsertAccount(account *Account) error
	GetAccountByEmail(email string) (*Account, error)
	GetAccountByID(id string) (*Account, error)

	// SetRefreshToken unconditionally replaces the stored refresh token
	// for an account, superseding any previous value.
	SetRefreshToken(id string, token string, expiration time.Time) error

	// RotateRefreshToken replaces the stored refresh token in a single
	// atomic step, but only when the stored value equals presented and has
	// not expired. Returns false when the swap was refused.
	RotateRefreshToken(id string, presented string, next string, expiration time.Time) (bool, error)
}
