package commentpolicy

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
	comment := fx.CreateComment(ctx, "hello", task.ID, project.ID, member.ID)

	memberships := membershipstore.New(db)

	ok, err := CanAccess(ctx, memberships, &comment, member.ID)
	if err != nil {
		t.Fatalf("CanAccess member: %v", err)
	}
	if !ok {
		t.Error("member denied access")
	}

	ok, err = CanAccess(ctx, memberships, &comment, outsider.ID)
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
	author := fx.CreateUser(ctx, "Amy Author", "amy@example.com")
	member := fx.CreateUser(ctx, "Max Member", "max@example.com")
	outsider := fx.CreateUser(ctx, "Oscar Outsider", "oscar@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	fx.CreateMembership(ctx, project.ID, author.ID, models.RoleMember)
	fx.CreateMembership(ctx, project.ID, member.ID, models.RoleMember)
	task := fx.CreateTask(ctx, "Write docs", project.ID)
	comment := fx.CreateComment(ctx, "hello", task.ID, project.ID, author.ID)

	memberships := membershipstore.New(db)

	for _, tc := range []struct {
		name   string
		user   models.User
		strict bool
		want   bool
	}{
		{"member, relaxed", member, false, true},
		{"outsider, relaxed", outsider, false, false},
		{"author, strict", author, true, true},
		{"owner, strict", owner, true, true},
		{"other member, strict", member, true, false},
	} {
		got, err := CanModify(ctx, memberships, &project, &comment, tc.user.ID, tc.strict)
		if err != nil {
			t.Fatalf("%s: CanModify: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: CanModify = %v, want %v", tc.name, got, tc.want)
		}
	}
}
