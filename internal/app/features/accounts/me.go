// internal/app/features/accounts/me.go
package accounts

import (
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
)

// HandleMe returns the authenticated caller's account record, as
// freshly loaded by the middleware.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}
	httpjson.Respond(w, http.StatusOK, toUserResponse(user))
}
