// internal/app/features/projects/delete.go
package projects

import (
	"context"
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	projectstore "github.com/dalemusser/taskhub/internal/app/store/projects"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// HandleDeleteProject removes a project and everything under it:
// memberships, tasks, and those tasks' comments, atomically where the
// server supports transactions.
func (h *Handler) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	project, ok := h.loadVisibleProject(ctx, w, r, userID)
	if !ok {
		return
	}

	allowed, err := projectpolicy.CanManage(ctx, membershipstore.New(h.DB), project, userID)
	if err != nil {
		h.Log.Warn("delete project: role check", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !allowed {
		httpjson.Forbidden(w, "only the project owner or an admin can delete a project")
		return
	}

	if err := projectstore.New(h.DB).Delete(ctx, project.ID); err != nil {
		h.Log.Warn("delete project", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.NoContent(w)
}
