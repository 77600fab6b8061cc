package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mootechpic/identity/internal/service"
)

type RefreshRequest struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (a *API) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		session, err := a.service.Refresh(req.Token, req.RefreshToken)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenInvalid):
				logApiErr(r, fmt.Sprintf("refresh rejected: %v", err))
				returnError(w, http.StatusUnauthorized, "invalid_token")
			case errors.Is(err, service.ErrRefreshTokenInvalid):
				logApiErr(r, fmt.Sprintf("refresh rejected: %v", err))
				returnError(w, http.StatusUnauthorized, "invalid_refresh_token")
			default:
				logApiErr(r, fmt.Sprintf("refresh failed: %v", err))
				returnError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}

		returnJson(newTokenResponse(session), w)
	}
}
