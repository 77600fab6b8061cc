// Package api exposes the identity service over HTTP and provides the
// middleware through which the rest of the backend consumes verified
// identities.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mootechpic/identity/internal/service"
	"github.com/mootechpic/identity/internal/tokens"
)

type API struct {
	service *service.Service
	signer  *tokens.Signer
}

func New(
	svc *service.Service,
	signer *tokens.Signer,
) *API {
	return &API{
		service: svc,
		signer:  signer,
	}
}

func (a *API) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/auth/register", a.Register()).Methods("POST")
	r.HandleFunc("/auth/login", a.Login()).Methods("POST")
	r.HandleFunc("/auth/refresh", a.Refresh()).Methods("POST")

	return r
}

// UserResponse is the account shape returned to clients; it never carries
// the password hash or the stored refresh token.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type TokenResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

func newTokenResponse(session *service.Session) *TokenResponse {
	return &TokenResponse{
		Token:        session.AccessToken,
		RefreshToken: session.RefreshToken,
		User: UserResponse{
			ID:    session.Account.ID,
			Name:  session.Account.Name,
			Email: session.Account.Email,
			Role:  session.Account.Role,
		},
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func decodeRequest[T any](req *T, w http.ResponseWriter, r *http.Request) bool {
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logApiErr(r, "bad json request")
		returnError(w, http.StatusBadRequest, "invalid_request")
		return false
	}
	return true
}

func returnJson(data any, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

// returnError writes a terse error code; failure causes are logged
// server-side and never sent to the client.
func returnError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: code})
}

func logApiErr(r *http.Request, msg string) {
	log.Printf("%s %s: %s\n", r.Method, r.RequestURI, msg)
}
