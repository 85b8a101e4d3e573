// internal/app/features/accounts/refresh.go
package accounts

import (
	"context"
	"net/http"

	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"go.uber.org/zap"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleRefresh exchanges a valid refresh token for a new pair. The
// user row is re-read first, so a deleted account cannot keep minting
// tokens.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "invalid request body")
		return
	}
	if req.Refresh == "" {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "refresh token is required")
		return
	}

	userID, err := h.Auth.Tokens().VerifyRefresh(req.Refresh)
	if err != nil {
		httpjson.Unauthorized(w, "invalid or expired refresh token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	users := userstore.New(h.DB)
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Unauthorized(w, "invalid or expired refresh token")
			return
		}
		h.Log.Warn("refresh: load user", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	pair, err := h.Auth.Tokens().IssuePair(user.ID)
	if err != nil {
		h.Log.Warn("refresh: issue tokens", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	httpjson.Respond(w, http.StatusOK, pair)
}
