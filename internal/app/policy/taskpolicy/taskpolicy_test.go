package taskpolicy

import (
	"testing"

	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/testutil"
)

func TestCanAccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	member := fx.CreateUser(ctx, "Max Member", "max@example.com")
	outsider := fx.CreateUser(ctx, "Oscar Outsider", "oscar@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	fx.CreateMembership(ctx, project.ID, member.ID, models.RoleMember)
	task := fx.CreateTask(ctx, "Write docs", project.ID)

	memberships := membershipstore.New(db)

	ok, err := CanAccess(ctx, memberships, &task, member.ID)
	if err != nil {
		t.Fatalf("CanAccess member: %v", err)
	}
	if !ok {
		t.Error("member denied access")
	}

	ok, err = CanAccess(ctx, memberships, &task, outsider.ID)
	if err != nil {
		t.Fatalf("CanAccess outsider: %v", err)
	}
	if ok {
		t.Error("outsider granted access")
	}
}

func TestCanModify(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	creator := fx.CreateUser(ctx, "Carol Creator", "carol@example.com")
	member := fx.CreateUser(ctx, "Max Member", "max@example.com")
	outsider := fx.CreateUser(ctx, "Oscar Outsider", "oscar@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	fx.CreateMembership(ctx, project.ID, creator.ID, models.RoleMember)
	fx.CreateMembership(ctx, project.ID, member.ID, models.RoleMember)

	task := fx.CreateTask(ctx, "Write docs", project.ID)
	task.CreatedBy = creator.ID
	if _, err := db.Collection("tasks").UpdateByID(ctx, task.ID, map[string]any{
		"$set": map[string]any{"created_by": creator.ID},
	}); err != nil {
		t.Fatalf("set created_by: %v", err)
	}

	memberships := membershipstore.New(db)

	for _, tc := range []struct {
		name   string
		user   models.User
		strict bool
		want   bool
	}{
		{"member, relaxed", member, false, true},
		{"outsider, relaxed", outsider, false, false},
		{"creator, strict", creator, true, true},
		{"owner, strict", owner, true, true},
		{"other member, strict", member, true, false},
		{"outsider, strict", outsider, true, false},
	} {
		got, err := CanModify(ctx, memberships, &project, &task, tc.user.ID, tc.strict)
		if err != nil {
			t.Fatalf("%s: CanModify: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: CanModify = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestValidAssignee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	member := fx.CreateUser(ctx, "Max Member", "max@example.com")
	outsider := fx.CreateUser(ctx, "Oscar Outsider", "oscar@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	fx.CreateMembership(ctx, project.ID, member.ID, models.RoleMember)

	memberships := membershipstore.New(db)

	ok, err := ValidAssignee(ctx, memberships, project.ID, member.ID)
	if err != nil {
		t.Fatalf("ValidAssignee member: %v", err)
	}
	if !ok {
		t.Error("member rejected as assignee")
	}

	ok, err = ValidAssignee(ctx, memberships, project.ID, outsider.ID)
	if err != nil {
		t.Fatalf("ValidAssignee outsider: %v", err)
	}
	if ok {
		t.Error("non-member accepted as assignee")
	}
}
