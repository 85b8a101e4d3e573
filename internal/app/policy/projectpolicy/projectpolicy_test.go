package projectpolicy

import (
	"testing"

	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/testutil"
)

func TestCanView(t *testing.T) {
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

	for _, tc := range []struct {
		name string
		user models.User
		want bool
	}{
		{"owner", owner, true},
		{"member", member, true},
		{"outsider", outsider, false},
	} {
		got, err := CanView(ctx, memberships, project.ID, tc.user.ID)
		if err != nil {
			t.Fatalf("%s: CanView: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: CanView = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanManage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	admin := fx.CreateUser(ctx, "Alice Admin", "alice@example.com")
	member := fx.CreateUser(ctx, "Max Member", "max@example.com")
	outsider := fx.CreateUser(ctx, "Oscar Outsider", "oscar@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	fx.CreateMembership(ctx, project.ID, admin.ID, models.RoleAdmin)
	fx.CreateMembership(ctx, project.ID, member.ID, models.RoleMember)

	memberships := membershipstore.New(db)

	for _, tc := range []struct {
		name string
		user models.User
		want bool
	}{
		{"owner", owner, true},
		{"admin member", admin, true},
		{"plain member", member, false},
		{"outsider", outsider, false},
	} {
		got, err := CanManage(ctx, memberships, &project, tc.user.ID)
		if err != nil {
			t.Fatalf("%s: CanManage: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("%s: CanManage = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanManageReflectsRoleChangeImmediately(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	owner := fx.CreateUser(ctx, "Olive Owner", "olive@example.com")
	admin := fx.CreateUser(ctx, "Alice Admin", "alice@example.com")
	project := fx.CreateProject(ctx, "Rollout", owner.ID)
	fx.CreateMembership(ctx, project.ID, admin.ID, models.RoleAdmin)

	memberships := membershipstore.New(db)

	ok, err := CanManage(ctx, memberships, &project, admin.ID)
	if err != nil {
		t.Fatalf("CanManage: %v", err)
	}
	if !ok {
		t.Fatal("admin denied before removal")
	}

	// Revoke and check again in the same process: no caching between
	// authorization checks.
	if err := memberships.Remove(ctx, project.ID, admin.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	ok, err = CanManage(ctx, memberships, &project, admin.ID)
	if err != nil {
		t.Fatalf("CanManage after removal: %v", err)
	}
	if ok {
		t.Error("removed admin still allowed to manage")
	}
}
