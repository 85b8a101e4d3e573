// internal/app/features/tasks/update.go
package tasks

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/taskhub/internal/app/policy/taskpolicy"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	projectstore "github.com/dalemusser/taskhub/internal/app/store/projects"
	taskstore "github.com/dalemusser/taskhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleUpdateTask serves PUT (full replacement) and PATCH (partial).
// Assignee changes are validated against the task's existing project;
// the project reference itself never moves.
func (h *Handler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	var req taskRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "invalid request body")
		return
	}

	full := r.Method == http.MethodPut
	if full && (req.Title == nil || strings.TrimSpace(*req.Title) == "") {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "title is required")
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

	fields, ok := h.buildUpdateFields(ctx, w, req, task, full)
	if !ok {
		return
	}

	updated, err := taskstore.New(h.DB).Update(ctx, task.ID, fields)
	if err != nil {
		h.Log.Warn("update task", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	names, err := userstore.New(h.DB).NamesByID(ctx, taskUserIDs([]models.Task{*updated}))
	if err != nil {
		h.Log.Warn("update task: user names", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, toTaskResponse(updated, names))
}

// buildUpdateFields translates the request into store fields. For PUT,
// absent optional fields reset to their create-time defaults; for
// PATCH, absent fields stay untouched. Writes the error response and
// returns ok=false on invalid input.
func (h *Handler) buildUpdateFields(ctx context.Context, w http.ResponseWriter, req taskRequest, task *models.Task, full bool) (taskstore.UpdateFields, bool) {
	var fields taskstore.UpdateFields

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			httpjson.Validation(w, httpjson.CodeValidationFailed, "title cannot be empty")
			return fields, false
		}
		fields.Title = &title
	}

	switch {
	case req.Description != nil:
		desc := htmlsanitize.Text(*req.Description)
		fields.Description = &desc
	case full:
		empty := ""
		fields.Description = &empty
	}

	if req.Status != nil {
		status := models.Status(*req.Status)
		if !status.Valid() {
			httpjson.Validation(w, httpjson.CodeValidationFailed, "status must be TODO, IN_PROGRESS, or DONE")
			return fields, false
		}
		fields.Status = &status
	} else if full {
		status := models.StatusTodo
		fields.Status = &status
	}

	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		if !priority.Valid() {
			httpjson.Validation(w, httpjson.CodeValidationFailed, "priority must be LOW, MEDIUM, or HIGH")
			return fields, false
		}
		fields.Priority = &priority
	} else if full {
		priority := models.PriorityMedium
		fields.Priority = &priority
	}

	switch {
	case req.AssignedTo.Value != nil:
		assignee, ok := h.resolveAssignee(ctx, w, task.ProjectID, *req.AssignedTo.Value)
		if !ok {
			return fields, false
		}
		fields.AssignedTo = &assignee
	case req.AssignedTo.Set || full:
		fields.ClearAssignee = true
	}

	switch {
	case req.DueDate.Value != nil:
		fields.DueDate = req.DueDate.Value
	case req.DueDate.Set || full:
		fields.ClearDueDate = true
	}

	return fields, true
}

// authorizeTaskMutation applies the strict-ownership policy when it is
// enabled. Membership itself was already verified by the load.
func (h *Handler) authorizeTaskMutation(ctx context.Context, w http.ResponseWriter, task *models.Task, userID primitive.ObjectID) bool {
	if !h.Strict {
		return true
	}

	project, err := projectstore.New(h.DB).GetByID(ctx, task.ProjectID)
	if err != nil {
		h.Log.Warn("task mutation: load project", zap.Error(err))
		httpjson.Internal(w)
		return false
	}
	allowed, err := taskpolicy.CanModify(ctx, membershipstore.New(h.DB), project, task, userID, true)
	if err != nil {
		h.Log.Warn("task mutation: ownership check", zap.Error(err))
		httpjson.Internal(w)
		return false
	}
	if !allowed {
		httpjson.Forbidden(w, "only the task's creator or a project admin can change it")
		return false
	}
	return true
}
