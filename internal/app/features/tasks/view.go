// internal/app/features/tasks/view.go
package tasks

import (
	"context"
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/policy/taskpolicy"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
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

// HandleViewTask returns a single task to members of its project.
func (h *Handler) HandleViewTask(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	task, ok := h.loadAccessibleTask(ctx, w, r, userID)
	if !ok {
		return
	}

	names, err := userstore.New(h.DB).NamesByID(ctx, taskUserIDs([]models.Task{*task}))
	if err != nil {
		h.Log.Warn("view task: user names", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, toTaskResponse(task, names))
}

// loadAccessibleTask parses {taskID}, loads the task, and requires the
// caller to be a member of its project. Missing tasks are 404, tasks
// in foreign projects are 403. On failure the response is written and
// ok is false.
func (h *Handler) loadAccessibleTask(ctx context.Context, w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) (*models.Task, bool) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskID"))
	if err != nil {
		httpjson.NotFound(w)
		return nil, false
	}

	task, err := taskstore.New(h.DB).GetByID(ctx, taskID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w)
			return nil, false
		}
		h.Log.Warn("load task", zap.Error(err))
		httpjson.Internal(w)
		return nil, false
	}

	allowed, err := taskpolicy.CanAccess(ctx, membershipstore.New(h.DB), task, userID)
	if err != nil {
		h.Log.Warn("load task: membership check", zap.Error(err))
		httpjson.Internal(w)
		return nil, false
	}
	if !allowed {
		httpjson.Forbidden(w, "you are not a member of this task's project")
		return nil, false
	}
	return task, true
}
