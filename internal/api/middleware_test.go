package api_test

import (
	"net/http"
	"testing"

	"github.com/mootechpic/identity/internal/api"
	"github.com/mootechpic/identity/internal/service"
	"github.com/mootechpic/identity/internal/testutil"
)

// probeHandler records the identity it was invoked with
type probeHandler struct {
	called   bool
	identity api.Identity
}

func (p *probeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.called = true
	p.identity, _ = api.IdentityFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	a := api.New(env.Service, env.Signer)

	account := env.RegisterTestUser(t, "alice@example.com", "password123")
	session := env.LoginTestUser(t, "alice@example.com", "password123")

	probe := &probeHandler{}
	result := testutil.Get(a.Authenticate(probe), "/protected", nil,
		testutil.BearerAuth(session.AccessToken))
	testutil.ExpectStatus(t, http.StatusOK, result)

	if !probe.called {
		t.Fatal("handler was not invoked")
	}
	if probe.identity.SubjectID != account.ID {
		t.Errorf("SubjectID = %s, want %s", probe.identity.SubjectID, account.ID)
	}
	if probe.identity.Email != "alice@example.com" {
		t.Errorf("Email = %s, want alice@example.com", probe.identity.Email)
	}
	if probe.identity.Role != service.RoleUser {
		t.Errorf("Role = %s, want %s", probe.identity.Role, service.RoleUser)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	a := api.New(env.Service, env.Signer)

	account := env.RegisterTestUser(t, "alice@example.com", "password123")
	expired := testutil.SignExpiredAccessToken(t, account)

	tests := []struct {
		name    string
		headers []testutil.Header
	}{
		{"no authorization header", nil},
		{"not a bearer token", []testutil.Header{{Key: "Authorization", Value: "Basic abc123"}}},
		{"garbage token", []testutil.Header{testutil.BearerAuth("not-a-token")}},
		{"expired token", []testutil.Header{testutil.BearerAuth(expired)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := &probeHandler{}
			result := testutil.Get(a.Authenticate(probe), "/protected", nil, tt.headers...)
			testutil.ExpectStatus(t, http.StatusUnauthorized, result)
			if probe.called {
				t.Error("handler must not run without a verified identity")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnv(t)
	a := api.New(env.Service, env.Signer)

	env.RegisterTestUser(t, "alice@example.com", "password123")
	session := env.LoginTestUser(t, "alice@example.com", "password123")

	// new accounts are plain users; the admin gate refuses them
	probe := &probeHandler{}
	handler := a.Authenticate(api.RequireRole(service.RoleAdmin, probe))
	result := testutil.Get(handler, "/admin", nil, testutil.BearerAuth(session.AccessToken))
	testutil.ExpectStatus(t, http.StatusForbidden, result)
	if probe.called {
		t.Error("handler must not run for the wrong role")
	}

	// the matching role passes
	userProbe := &probeHandler{}
	userHandler := a.Authenticate(api.RequireRole(service.RoleUser, userProbe))
	userResult := testutil.Get(userHandler, "/member", nil, testutil.BearerAuth(session.AccessToken))
	testutil.ExpectStatus(t, http.StatusOK, userResult)
	if !userProbe.called {
		t.Error("handler should run for the matching role")
	}
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	t.Parallel()

	// no identity in context, nothing passes
	probe := &probeHandler{}
	result := testutil.Get(api.RequireRole(service.RoleUser, probe), "/member", nil)
	testutil.ExpectStatus(t, http.StatusForbidden, result)
	if probe.called {
		t.Error("handler must not run without an identity")
	}
}
