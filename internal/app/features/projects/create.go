// internal/app/features/projects/create.go
package projects

import (
	"context"
	"net/http"
	"strings"

	projectstore "github.com/dalemusser/taskhub/internal/app/store/projects"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreateProject creates a project owned by the caller. The
// owner's ADMIN membership is written in the same transaction, so the
// project is never observable without it.
func (h *Handler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	var req createProjectRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	created, err := projectstore.New(h.DB).Create(ctx, models.Project{
		Name:        name,
		Description: htmlsanitize.Text(req.Description),
		OwnerID:     userID,
	})
	if err != nil {
		h.Log.Warn("create project", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	detail, err := h.projectDetail(ctx, &created)
	if err != nil {
		h.Log.Warn("create project: assemble response", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusCreated, detail)
}
