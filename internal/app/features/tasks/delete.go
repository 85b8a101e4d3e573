// internal/app/features/tasks/delete.go
package tasks

import (
	"context"
	"net/http"

	taskstore "github.com/dalemusser/taskhub/internal/app/store/tasks"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"go.uber.org/zap"
)

// HandleDeleteTask removes a task and its comments.
func (h *Handler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
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
	if !h.authorizeTaskMutation(ctx, w, task, userID) {
		return
	}

	if err := taskstore.New(h.DB).Delete(ctx, task.ID); err != nil {
		h.Log.Warn("delete task", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.NoContent(w)
}
