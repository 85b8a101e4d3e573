// internal/app/features/tasks/list.go
package tasks

import (
	"context"
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	projectstore "github.com/dalemusser/taskhub/internal/app/store/projects"
	taskstore "github.com/dalemusser/taskhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleListProjectTasks returns a project's tasks. Non-members are
// told no, not told nothing: the project id was already in their URL.
func (h *Handler) HandleListProjectTasks(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	project, ok := h.loadProjectForMember(ctx, w, r, userID)
	if !ok {
		return
	}

	list, err := taskstore.New(h.DB).ListByProject(ctx, project.ID)
	if err != nil {
		h.Log.Warn("list tasks", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	names, err := userstore.New(h.DB).NamesByID(ctx, taskUserIDs(list))
	if err != nil {
		h.Log.Warn("list tasks: user names", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	out := make([]taskResponse, 0, len(list))
	for i := range list {
		out = append(out, toTaskResponse(&list[i], names))
	}
	httpjson.Respond(w, http.StatusOK, out)
}

// loadProjectForMember parses the parent {id} param, loads the
// project, and requires the caller to be a member. Unlike the project
// endpoints this answers 403 rather than 404 for non-members. On
// failure the response is written and ok is false.
func (h *Handler) loadProjectForMember(ctx context.Context, w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) (*models.Project, bool) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w)
		return nil, false
	}

	project, err := projectstore.New(h.DB).GetByID(ctx, projectID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w)
			return nil, false
		}
		h.Log.Warn("load project for tasks", zap.Error(err))
		httpjson.Internal(w)
		return nil, false
	}

	member, err := projectpolicy.CanView(ctx, membershipstore.New(h.DB), project.ID, userID)
	if err != nil {
		h.Log.Warn("load project for tasks: membership check", zap.Error(err))
		httpjson.Internal(w)
		return nil, false
	}
	if !member {
		httpjson.Forbidden(w, "you are not a member of this project")
		return nil, false
	}
	return project, true
}
