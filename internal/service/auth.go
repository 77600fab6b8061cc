package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/mootechpic/identity/internal/tokens"
	"golang.org/x/crypto/bcrypt"
)

func (s *Service) Login(
	email string,
	password string,
) (
	*Session,
	error,
) {
	account, err := s.authenticate(email, password)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.signer.Sign(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to issue access token: %v", ErrInternal, err)
	}

	refreshToken, err := tokens.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to issue refresh token: %v", ErrInternal, err)
	}

	// overwrite whatever refresh token the account held before; only one
	// value is ever valid at a time
	expiration := s.signer.RefreshExpiry()
	if err := s.store.SetRefreshToken(account.ID, refreshToken, expiration); err != nil {
		return nil, fmt.Errorf("%w: failed to store refresh token: %v", ErrInternal, err)
	}
	account.RefreshToken = refreshToken
	account.RefreshExpiration = expiration

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	}, nil
}

// authenticate collapses unknown-email and wrong-password into one
// ErrInvalidCredentials so that callers cannot probe which emails exist.
// The log line keeps the distinction for operators.
func (s *Service) authenticate(
	email string,
	password string,
) (
	*Account,
	error,
) {
	account, err := s.store.GetAccountByEmail(email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			log.Printf("login: no account for '%s'", email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: failed to retrieve account: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(account.Secret, []byte(password)); err != nil {
		log.Printf("login: password mismatch for '%s'", email)
		return nil, ErrInvalidCredentials
	}

	return account, nil
}
