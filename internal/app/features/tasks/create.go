// internal/app/features/tasks/create.go
package tasks

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/taskhub/internal/app/policy/taskpolicy"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	taskstore "github.com/dalemusser/taskhub/internal/app/store/tasks"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleCreateTask creates a task in the project named by the URL.
// The assignee, when supplied, is validated against the project's
// membership before anything is written.
func (h *Handler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
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

	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "title is required")
		return
	}
	status, priority, ok := parseStatusPriority(w, req)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	project, ok := h.loadProjectForMember(ctx, w, r, userID)
	if !ok {
		return
	}

	task := models.Task{
		Title:     strings.TrimSpace(*req.Title),
		Status:    status,
		Priority:  priority,
		ProjectID: project.ID,
		CreatedBy: userID,
	}
	if req.Description != nil {
		task.Description = htmlsanitize.Text(*req.Description)
	}
	if req.DueDate.Value != nil {
		task.DueDate = req.DueDate.Value
	}

	if req.AssignedTo.Value != nil {
		assignee, ok := h.resolveAssignee(ctx, w, project.ID, *req.AssignedTo.Value)
		if !ok {
			return
		}
		task.AssignedTo = &assignee
	}

	created, err := taskstore.New(h.DB).Insert(ctx, task)
	if err != nil {
		h.Log.Warn("create task", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	names, err := userstore.New(h.DB).NamesByID(ctx, taskUserIDs([]models.Task{created}))
	if err != nil {
		h.Log.Warn("create task: user names", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusCreated, toTaskResponse(&created, names))
}

// parseStatusPriority validates the optional status/priority fields,
// falling back to the TODO/MEDIUM defaults. Writes a 400 and returns
// ok=false on an unknown value.
func parseStatusPriority(w http.ResponseWriter, req taskRequest) (models.Status, models.Priority, bool) {
	status := models.StatusTodo
	if req.Status != nil {
		status = models.Status(*req.Status)
		if !status.Valid() {
			httpjson.Validation(w, httpjson.CodeValidationFailed, "status must be TODO, IN_PROGRESS, or DONE")
			return "", "", false
		}
	}
	priority := models.PriorityMedium
	if req.Priority != nil {
		priority = models.Priority(*req.Priority)
		if !priority.Valid() {
			httpjson.Validation(w, httpjson.CodeValidationFailed, "priority must be LOW, MEDIUM, or HIGH")
			return "", "", false
		}
	}
	return status, priority, true
}

// resolveAssignee parses an assignee id and requires them to hold a
// membership in the project right now. Writes the error response and
// returns ok=false otherwise.
func (h *Handler) resolveAssignee(ctx context.Context, w http.ResponseWriter, projectID primitive.ObjectID, raw string) (primitive.ObjectID, bool) {
	assigneeID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httpjson.Validation(w, httpjson.CodeInvalidAssignee, "assigned_to is not a valid user id")
		return primitive.NilObjectID, false
	}
	member, err := taskpolicy.ValidAssignee(ctx, membershipstore.New(h.DB), projectID, assigneeID)
	if err != nil {
		h.Log.Warn("assignee check", zap.Error(err))
		httpjson.Internal(w)
		return primitive.NilObjectID, false
	}
	if !member {
		httpjson.Validation(w, httpjson.CodeInvalidAssignee, "assignee must be a member of the project")
		return primitive.NilObjectID, false
	}
	return assigneeID, true
}
