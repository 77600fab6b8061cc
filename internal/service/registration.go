package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func (s *Service) Register(
	email string,
	password string,
) (
	*Account,
	error,
) {
	if _, err := s.store.GetAccountByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	} else if !errors.Is(err, ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: failed to check email: %v", ErrInternal, err)
	}

	hashPass, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordMode.Cost())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	// ids are always server-generated; a client-supplied id is never accepted
	account := &Account{
		ID:     uuid.NewString(),
		Email:  email,
		Secret: hashPass,
		Role:   RoleUser,
	}

	// the pre-check above is advisory; two concurrent registrations can
	// both pass it, and the unique constraint settles the race
	err = s.store.InsertAccount(account)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to insert account: %v", ErrInternal, err)
	}

	return account, nil
}
