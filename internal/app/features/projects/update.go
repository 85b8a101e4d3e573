// internal/app/features/projects/update.go
package projects

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	projectstore "github.com/dalemusser/taskhub/internal/app/store/projects"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// HandleUpdateProject serves both PUT (name required) and PATCH
// (partial). Only the owner or an ADMIN member may change a project;
// a plain member gets 403, a non-member 404.
func (h *Handler) HandleUpdateProject(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	var req updateProjectRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "invalid request body")
		return
	}

	full := r.Method == http.MethodPut
	if full && req.Name == nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "name is required")
		return
	}

	fields := projectstore.UpdateFields{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httpjson.Validation(w, httpjson.CodeValidationFailed, "name cannot be empty")
			return
		}
		fields.Name = &name
	}
	if req.Description != nil {
		desc := htmlsanitize.Text(*req.Description)
		fields.Description = &desc
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	project, ok := h.loadVisibleProject(ctx, w, r, userID)
	if !ok {
		return
	}

	allowed, err := projectpolicy.CanManage(ctx, membershipstore.New(h.DB), project, userID)
	if err != nil {
		h.Log.Warn("update project: role check", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !allowed {
		httpjson.Forbidden(w, "only the project owner or an admin can change a project")
		return
	}

	updated, err := projectstore.New(h.DB).Update(ctx, project.ID, fields)
	if err != nil {
		h.Log.Warn("update project", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	detail, err := h.projectDetail(ctx, updated)
	if err != nil {
		h.Log.Warn("update project: assemble response", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, detail)
}
