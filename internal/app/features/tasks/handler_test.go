package tasks

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func projectScopedRequest(t *testing.T, method string, body any, u models.User, projectID string) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(t, method, "/projects/x/tasks", body)
	} else {
		req = httptest.NewRequest(method, "/projects/x/tasks", nil)
	}
	req = testutil.WithUser(req, u)
	return testutil.WithChiURLParam(req, "id", projectID)
}

func taskRequestFor(t *testing.T, method string, body any, u models.User, taskID string) *http.Request {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(t, method, "/tasks/x", body)
	} else {
		req = httptest.NewRequest(method, "/tasks/x", nil)
	}
	req = testutil.WithUser(req, u)
	return testutil.WithChiURLParam(req, "taskID", taskID)
}

func TestListProjectTasksGating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), false)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	outsider := fx.CreateUser(ctx, "Oscar Outsider", "oscar@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	fx.CreateTask(ctx, "Write docs", project.ID)

	rec := httptest.NewRecorder()
	h.HandleListProjectTasks(rec, projectScopedRequest(t, http.MethodGet, nil, owner, project.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("member status = %d", rec.Code)
	}
	var list []struct {
		Title string `json:"title"`
	}
	testutil.DecodeBody(t, rec, &list)
	if len(list) != 1 || list[0].Title != "Write docs" {
		t.Errorf("list = %+v", list)
	}

	// Non-members are refused, not stonewalled: the project id was in
	// their URL already.
	rec = httptest.NewRecorder()
	h.HandleListProjectTasks(rec, projectScopedRequest(t, http.MethodGet, nil, outsider, project.ID.Hex()))
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider status = %d, want 403", rec.Code)
	}
	if code := testutil.ErrorCode(t, rec); code != httpjson.CodeForbidden {
		t.Errorf("code = %q", code)
	}

	rec = httptest.NewRecorder()
	h.HandleListProjectTasks(rec, projectScopedRequest(t, http.MethodGet, nil, owner, primitive.NewObjectID().Hex()))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing project status = %d, want 404", rec.Code)
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), false)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)

	rec := httptest.NewRecorder()
	h.HandleCreateTask(rec, projectScopedRequest(t, http.MethodPost, map[string]string{
		"title": "Write docs",
	}, owner, project.ID.Hex()))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Status    models.Status   `json:"status"`
		Priority  models.Priority `json:"priority"`
		ProjectID string          `json:"project_id"`
		CreatedBy struct {
			ID string `json:"id"`
		} `json:"created_by"`
		AssignedTo *struct{} `json:"assigned_to"`
	}
	testutil.DecodeBody(t, rec, &got)
	if got.Status != models.StatusTodo || got.Priority != models.PriorityMedium {
		t.Errorf("defaults = %s/%s, want TODO/MEDIUM", got.Status, got.Priority)
	}
	if got.ProjectID != project.ID.Hex() {
		t.Errorf("project_id = %q", got.ProjectID)
	}
	if got.CreatedBy.ID != owner.ID.Hex() {
		t.Errorf("created_by = %+v", got.CreatedBy)
	}
	if got.AssignedTo != nil {
		t.Error("assigned_to set on unassigned task")
	}
}

func TestCreateTaskAssigneeValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), false)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	member := fx.CreateUser(ctx, "Max Member", "max@example.com")
	outsider := fx.CreateUser(ctx, "Oscar Outsider", "oscar@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	fx.CreateMembership(ctx, project.ID, member.ID, models.RoleMember)

	// A member assignee works.
	rec := httptest.NewRecorder()
	h.HandleCreateTask(rec, projectScopedRequest(t, http.MethodPost, map[string]string{
		"title":       "Review",
		"assigned_to": member.ID.Hex(),
	}, owner, project.ID.Hex()))
	if rec.Code != http.StatusCreated {
		t.Fatalf("member assignee status = %d, body %s", rec.Code, rec.Body.String())
	}

	// A non-member assignee is rejected before any write.
	rec = httptest.NewRecorder()
	h.HandleCreateTask(rec, projectScopedRequest(t, http.MethodPost, map[string]string{
		"title":       "Review",
		"assigned_to": outsider.ID.Hex(),
	}, owner, project.ID.Hex()))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("outsider assignee status = %d, want 400", rec.Code)
	}
	if code := testutil.ErrorCode(t, rec); code != httpjson.CodeInvalidAssignee {
		t.Errorf("code = %q", code)
	}

	// Garbage assignee id.
	rec = httptest.NewRecorder()
	h.HandleCreateTask(rec, projectScopedRequest(t, http.MethodPost, map[string]string{
		"title":       "Review",
		"assigned_to": "not-an-id",
	}, owner, project.ID.Hex()))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("garbage assignee status = %d, want 400", rec.Code)
	}

	// Bad status value.
	rec = httptest.NewRecorder()
	h.HandleCreateTask(rec, projectScopedRequest(t, http.MethodPost, map[string]string{
		"title":  "Review",
		"status": "BLOCKED",
	}, owner, project.ID.Hex()))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status = %d, want 400", rec.Code)
	}
	if code := testutil.ErrorCode(t, rec); code != httpjson.CodeValidationFailed {
		t.Errorf("code = %q", code)
	}
}

func TestViewTaskGating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), false)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	outsider := fx.CreateUser(ctx, "Oscar Outsider", "oscar@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	task := fx.CreateTask(ctx, "Write docs", project.ID)

	rec := httptest.NewRecorder()
	h.HandleViewTask(rec, taskRequestFor(t, http.MethodGet, nil, owner, task.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("member status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleViewTask(rec, taskRequestFor(t, http.MethodGet, nil, outsider, task.ID.Hex()))
	if rec.Code != http.StatusForbidden {
		t.Errorf("outsider status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleViewTask(rec, taskRequestFor(t, http.MethodGet, nil, owner, primitive.NewObjectID().Hex()))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing task status = %d, want 404", rec.Code)
	}
}

func TestPatchTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), false)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	member := fx.CreateUser(ctx, "Max Member", "max@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	fx.CreateMembership(ctx, project.ID, member.ID, models.RoleMember)
	task := fx.CreateTask(ctx, "Write docs", project.ID)

	rec := httptest.NewRecorder()
	h.HandleUpdateTask(rec, taskRequestFor(t, http.MethodPatch, map[string]any{
		"status":      "DONE",
		"assigned_to": member.ID.Hex(),
	}, member, task.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Title      string        `json:"title"`
		Status     models.Status `json:"status"`
		AssignedTo *struct {
			ID string `json:"id"`
		} `json:"assigned_to"`
	}
	testutil.DecodeBody(t, rec, &got)
	if got.Status != models.StatusDone {
		t.Errorf("status = %q", got.Status)
	}
	if got.Title != "Write docs" {
		t.Errorf("untouched title changed to %q", got.Title)
	}
	if got.AssignedTo == nil || got.AssignedTo.ID != member.ID.Hex() {
		t.Errorf("assigned_to = %+v", got.AssignedTo)
	}

	// Explicit null clears the assignee.
	rec = httptest.NewRecorder()
	h.HandleUpdateTask(rec, taskRequestFor(t, http.MethodPatch, map[string]any{
		"assigned_to": nil,
	}, member, task.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
	testutil.DecodeBody(t, rec, &got)
	if got.AssignedTo != nil {
		t.Errorf("assigned_to = %+v after explicit null", got.AssignedTo)
	}
}

func TestPutTaskIsFullReplacement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), false)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	task := fx.CreateAssignedTask(ctx, "Write docs", project.ID, owner.ID)

	rec := httptest.NewRecorder()
	h.HandleUpdateTask(rec, taskRequestFor(t, http.MethodPut, map[string]any{
		"title": "Rewritten",
	}, owner, task.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Title      string          `json:"title"`
		Status     models.Status   `json:"status"`
		Priority   models.Priority `json:"priority"`
		AssignedTo *struct{}       `json:"assigned_to"`
	}
	testutil.DecodeBody(t, rec, &got)
	if got.Title != "Rewritten" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Status != models.StatusTodo || got.Priority != models.PriorityMedium {
		t.Errorf("PUT did not reset to defaults: %s/%s", got.Status, got.Priority)
	}
	if got.AssignedTo != nil {
		t.Error("PUT without assigned_to kept the assignee")
	}

	// PUT requires a title.
	rec = httptest.NewRecorder()
	h.HandleUpdateTask(rec, taskRequestFor(t, http.MethodPut, map[string]any{
		"status": "DONE",
	}, owner, task.ID.Hex()))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT without title status = %d, want 400", rec.Code)
	}
}

func TestStrictOwnershipOnTasks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), true)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	creator := fx.CreateUser(ctx, "Carol Creator", "carol@example.com")
	member := fx.CreateUser(ctx, "Max Member", "max@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	fx.CreateMembership(ctx, project.ID, creator.ID, models.RoleMember)
	fx.CreateMembership(ctx, project.ID, member.ID, models.RoleMember)

	task := fx.CreateTask(ctx, "Write docs", project.ID)
	if _, err := db.Collection("tasks").UpdateByID(ctx, task.ID, map[string]any{
		"$set": map[string]any{"created_by": creator.ID},
	}); err != nil {
		t.Fatalf("set created_by: %v", err)
	}

	body := map[string]any{"status": "DONE"}

	rec := httptest.NewRecorder()
	h.HandleUpdateTask(rec, taskRequestFor(t, http.MethodPatch, body, member, task.ID.Hex()))
	if rec.Code != http.StatusForbidden {
		t.Errorf("unrelated member status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleUpdateTask(rec, taskRequestFor(t, http.MethodPatch, body, creator, task.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Errorf("creator status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleUpdateTask(rec, taskRequestFor(t, http.MethodPatch, body, owner, task.ID.Hex()))
	if rec.Code != http.StatusOK {
		t.Errorf("owner status = %d", rec.Code)
	}
}

func TestDeleteTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), false)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	outsider := fx.CreateUser(ctx, "Oscar Outsider", "oscar@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	task := fx.CreateTask(ctx, "Write docs", project.ID)
	fx.CreateComment(ctx, "note", task.ID, project.ID, owner.ID)

	rec := httptest.NewRecorder()
	h.HandleDeleteTask(rec, taskRequestFor(t, http.MethodDelete, nil, outsider, task.ID.Hex()))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("outsider status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleDeleteTask(rec, taskRequestFor(t, http.MethodDelete, nil, owner, task.ID.Hex()))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("owner status = %d", rec.Code)
	}

	n, err := db.Collection("comments").CountDocuments(ctx, map[string]any{"task_id": task.ID})
	if err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if n != 0 {
		t.Errorf("%d comments survived task delete", n)
	}
}
