package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mootechpic/identity/internal/service"
)

type RegistrationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegistrationResponse struct {
	Message string `json:"message"`
}

func (a *API) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegistrationRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}
		if req.Email == "" || req.Password == "" {
			logApiErr(r, "missing email or password")
			returnError(w, http.StatusBadRequest, "invalid_request")
			return
		}

		_, err := a.service.Register(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				logApiErr(r, fmt.Sprintf("registration refused: %v", err))
				returnError(w, http.StatusBadRequest, "duplicate_account")
				return
			}
			logApiErr(r, fmt.Sprintf("registration failed: %v", err))
			returnError(w, http.StatusInternalServerError, "internal_error")
			return
		}

		returnJson(&RegistrationResponse{Message: "registration successful"}, w)
	}
}
