package service_test

import (
	"errors"
	"testing"

	"github.com/mootechpic/identity/internal/service"
	"github.com/mootechpic/identity/internal/testutil"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	account := env.RegisterTestUser(t, "alice@example.com", "password123")

	session, err := env.Service.Login("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatal("session is missing tokens")
	}

	// the access token must carry the account's identity
	claims, err := env.Signer.Validate(session.AccessToken, true)
	if err != nil {
		t.Fatalf("issued access token does not validate: %v", err)
	}
	if claims.Subject != account.ID {
		t.Errorf("Subject = %s, want %s", claims.Subject, account.ID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %s, want alice@example.com", claims.Email)
	}
	if claims.Role != service.RoleUser {
		t.Errorf("Role = %s, want %s", claims.Role, service.RoleUser)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	env.RegisterTestUser(t, "alice@example.com", "password123")

	_, err := env.Service.Login("alice@example.com", "wrongpassword")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	_, err := env.Service.Login("nobody@example.com", "password123")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	env.RegisterTestUser(t, "alice@example.com", "password123")

	// unknown email and wrong password must be indistinguishable to the
	// caller; neither error carries the email's existence
	_, unknownErr := env.Service.Login("nobody@example.com", "password123")
	_, wrongErr := env.Service.Login("alice@example.com", "wrongpassword")

	if unknownErr == nil || wrongErr == nil {
		t.Fatal("both logins should fail")
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("failure errors differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLogin_SupersedesRefreshToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)

	env.RegisterTestUser(t, "alice@example.com", "password123")

	first := env.LoginTestUser(t, "alice@example.com", "password123")
	second := env.LoginTestUser(t, "alice@example.com", "password123")

	if first.RefreshToken == second.RefreshToken {
		t.Fatal("each login should mint a distinct refresh token")
	}

	// only the newest refresh token is live; the earlier one is dead
	_, err := env.Service.Refresh(first.AccessToken, first.RefreshToken)
	if !errors.Is(err, service.ErrRefreshTokenInvalid) {
		t.Errorf("expected ErrRefreshTokenInvalid for superseded token, got %v", err)
	}

	if _, err := env.Service.Refresh(second.AccessToken, second.RefreshToken); err != nil {
		t.Errorf("newest refresh token should work: %v", err)
	}
}
