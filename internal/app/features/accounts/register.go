// internal/app/features/accounts/register.go
package accounts

import (
	"context"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.uber.org/zap"
)

const minPasswordLength = 8

// HandleRegister creates an account and signs the new user in by
// returning a token pair alongside the user record.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "invalid request body")
		return
	}

	if msg, ok := validateRegistration(req); !ok {
		httpjson.Validation(w, httpjson.CodeValidationFailed, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	users := userstore.New(h.DB)
	user, err := users.Create(ctx, models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}, req.Password)
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			httpjson.Validation(w, httpjson.CodeValidationFailed, err.Error())
			return
		}
		h.Log.Warn("register: create user", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	pair, err := h.Auth.Tokens().IssuePair(user.ID)
	if err != nil {
		h.Log.Warn("register: issue tokens", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusCreated, authResponse{
		User:    toUserResponse(&user),
		Access:  pair.Access,
		Refresh: pair.Refresh,
	})
}

func validateRegistration(req registerRequest) (string, bool) {
	if strings.TrimSpace(req.Username) == "" {
		return "username is required", false
	}
	if strings.TrimSpace(req.Email) == "" {
		return "email is required", false
	}
	if !strings.Contains(req.Email, "@") {
		return "email is not valid", false
	}
	if len(req.Password) < minPasswordLength {
		return "password must be at least 8 characters", false
	}
	if req.Password != req.ConfirmPassword {
		return "passwords do not match", false
	}
	return "", true
}
