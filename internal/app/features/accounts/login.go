// internal/app/features/accounts/login.go
package accounts

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// HandleLogin verifies an email/password pair and returns the user
// with a fresh token pair. Unknown email and wrong password produce
// the same 401.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	users := userstore.New(h.DB)
	user, err := users.VerifyPassword(ctx, req.Email, req.Password)
	if err != nil {
		if err == userstore.ErrInvalidCredentials {
			httpjson.Unauthorized(w, err.Error())
			return
		}
		h.Log.Warn("login: verify password", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	pair, err := h.Auth.Tokens().IssuePair(user.ID)
	if err != nil {
		h.Log.Warn("login: issue tokens", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusOK, authResponse{
		User:    toUserResponse(user),
		Access:  pair.Access,
		Refresh: pair.Refresh,
	})
}
