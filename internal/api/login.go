package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mootechpic/identity/internal/service"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		session, err := a.service.Login(req.Email, req.Password)
		if err != nil {
			// unknown email and wrong password produce the same response
			if errors.Is(err, service.ErrInvalidCredentials) {
				logApiErr(r, fmt.Sprintf("'%s' failed to authenticate", req.Email))
				returnError(w, http.StatusUnauthorized, "invalid_credentials")
				return
			}
			logApiErr(r, fmt.Sprintf("login failed: %v", err))
			returnError(w, http.StatusInternalServerError, "internal_error")
			return
		}

		returnJson(newTokenResponse(session), w)
	}
}
