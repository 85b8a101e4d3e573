// internal/app/features/comments/taskcomments.go
package comments

import (
	"context"
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/policy/taskpolicy"
	commentstore "github.com/dalemusser/taskhub/internal/app/store/comments"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	taskstore "github.com/dalemusser/taskhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleListTaskComments returns a task's comments, oldest first.
func (h *Handler) HandleListTaskComments(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	task, ok := h.loadTaskForMember(ctx, w, r, userID)
	if !ok {
		return
	}

	list, err := commentstore.New(h.DB).ListByTask(ctx, task.ID)
	if err != nil {
		h.Log.Warn("list comments", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	names, err := userstore.New(h.DB).NamesByID(ctx, commentUserIDs(list))
	if err != nil {
		h.Log.Warn("list comments: user names", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	out := make([]commentResponse, 0, len(list))
	for i := range list {
		out = append(out, toCommentResponse(&list[i], names))
	}
	httpjson.Respond(w, http.StatusOK, out)
}

// HandleCreateComment adds a comment to a task. The author is always
// the caller; a user_id in the body is ignored. Content that
// sanitizes down to nothing is rejected.
func (h *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	user, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	var req commentRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "invalid request body")
		return
	}

	content := htmlsanitize.Text(req.Content)
	if content == "" {
		httpjson.Validation(w, httpjson.CodeEmptyContent, "comment content cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	task, ok := h.loadTaskForMember(ctx, w, r, userID)
	if !ok {
		return
	}

	created, err := commentstore.New(h.DB).Insert(ctx, models.Comment{
		Content:   content,
		UserID:    userID,
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
	})
	if err != nil {
		h.Log.Warn("create comment", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	names := map[primitive.ObjectID]string{userID: user.DisplayName()}
	httpjson.Respond(w, http.StatusCreated, toCommentResponse(&created, names))
}

// loadTaskForMember parses the parent {taskID} param, loads the task,
// and requires project membership. Missing tasks are 404, foreign
// projects 403.
func (h *Handler) loadTaskForMember(ctx context.Context, w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) (*models.Task, bool) {
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
		h.Log.Warn("load task for comments", zap.Error(err))
		httpjson.Internal(w)
		return nil, false
	}

	member, err := taskpolicy.CanAccess(ctx, membershipstore.New(h.DB), task, userID)
	if err != nil {
		h.Log.Warn("load task for comments: membership check", zap.Error(err))
		httpjson.Internal(w)
		return nil, false
	}
	if !member {
		httpjson.Forbidden(w, "you are not a member of this task's project")
		return nil, false
	}
	return task, true
}
