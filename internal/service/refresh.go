package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/mootechpic/identity/internal/tokens"
)

// Refresh exchanges an expired-or-not access token plus the account's
// current refresh token for a brand-new pair. The access token proves which
// account is being refreshed; the opaque refresh token is the secret that
// actually authorizes the exchange.
func (s *Service) Refresh(
	accessToken string,
	refreshToken string,
) (
	*Session,
	error,
) {
	// the access token may be past its expiry, but must still verify in
	// every other respect; its claims name the account and nothing more
	claims, err := s.signer.Validate(accessToken, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrTokenInvalid)
	}

	if refreshToken == "" {
		return nil, ErrRefreshTokenInvalid
	}

	account, err := s.store.GetAccountByID(claims.Subject)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("%w: failed to retrieve account: %v", ErrInternal, err)
	}

	newAccessToken, err := s.signer.Sign(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to issue access token: %v", ErrInternal, err)
	}

	newRefreshToken, err := tokens.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to issue refresh token: %v", ErrInternal, err)
	}

	// compare-and-swap against the stored value: of two concurrent
	// refreshes presenting the same token, exactly one lands; the loser
	// observes the already-rotated value and is refused
	expiration := s.signer.RefreshExpiry()
	swapped, err := s.store.RotateRefreshToken(account.ID, refreshToken, newRefreshToken, expiration)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to rotate refresh token: %v", ErrInternal, err)
	}
	if !swapped {
		log.Printf("refresh: stale or unknown refresh token for account %s", account.ID)
		return nil, ErrRefreshTokenInvalid
	}
	account.RefreshToken = newRefreshToken
	account.RefreshExpiration = expiration

	return &Session{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		Account:      account,
	}, nil
}
