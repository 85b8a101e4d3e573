package commentstore

import (
	"testing"

	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestInsertAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	task := fx.CreateTask(ctx, "Write docs", project.ID)

	store := New(db)

	created, err := store.Insert(ctx, models.Comment{
		Content:   "looks good",
		UserID:    owner.ID,
		TaskID:    task.ID,
		ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("zero id")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Content != "looks good" || got.UserID != owner.ID || got.TaskID != task.ID {
		t.Errorf("got %+v", got)
	}

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("missing comment err = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestListByTask(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	task := fx.CreateTask(ctx, "Write docs", project.ID)
	other := fx.CreateTask(ctx, "Other", project.ID)

	first := fx.CreateComment(ctx, "first", task.ID, project.ID, owner.ID)
	second := fx.CreateComment(ctx, "second", task.ID, project.ID, owner.ID)
	fx.CreateComment(ctx, "elsewhere", other.ID, project.ID, owner.ID)

	store := New(db)

	list, err := store.ListByTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ListByTask: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d comments, want 2", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Error("comments not in insertion order")
	}
}

func TestUpdateContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	task := fx.CreateTask(ctx, "Write docs", project.ID)
	comment := fx.CreateComment(ctx, "first draft", task.ID, project.ID, owner.ID)

	store := New(db)

	got, err := store.UpdateContent(ctx, comment.ID, "second draft")
	if err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if got.Content != "second draft" {
		t.Errorf("content = %q", got.Content)
	}
	if got.UserID != owner.ID || got.TaskID != task.ID {
		t.Error("author or task changed on update")
	}

	if _, err := store.UpdateContent(ctx, primitive.NewObjectID(), "x"); err != mongo.ErrNoDocuments {
		t.Errorf("missing comment err = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	task := fx.CreateTask(ctx, "Write docs", project.ID)
	comment := fx.CreateComment(ctx, "delete me", task.ID, project.ID, owner.ID)

	store := New(db)

	if err := store.Delete(ctx, comment.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, comment.ID); err != mongo.ErrNoDocuments {
		t.Errorf("second Delete err = %v, want mongo.ErrNoDocuments", err)
	}
}

func TestDeleteByTaskAndProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	keep := fx.CreateProject(ctx, "Keeper", owner.ID)
	task := fx.CreateTask(ctx, "Write docs", project.ID)
	sibling := fx.CreateTask(ctx, "Sibling", project.ID)
	keepTask := fx.CreateTask(ctx, "Stays", keep.ID)

	fx.CreateComment(ctx, "a", task.ID, project.ID, owner.ID)
	fx.CreateComment(ctx, "b", task.ID, project.ID, owner.ID)
	fx.CreateComment(ctx, "c", sibling.ID, project.ID, owner.ID)
	fx.CreateComment(ctx, "d", keepTask.ID, keep.ID, owner.ID)

	store := New(db)

	n, err := store.DeleteByTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("DeleteByTask: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteByTask removed %d, want 2", n)
	}

	n, err = store.DeleteByProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("DeleteByProject: %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteByProject removed %d, want 1", n)
	}

	left, err := store.ListByTask(ctx, keepTask.ID)
	if err != nil {
		t.Fatalf("ListByTask: %v", err)
	}
	if len(left) != 1 {
		t.Errorf("unrelated project's comments deleted")
	}
}
