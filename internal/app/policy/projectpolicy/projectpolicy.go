// Package projectpolicy provides authorization policies for projects.
//
// Authorization rules:
//   - Any member of a project (ADMIN or MEMBER) can view it, its member
//     list, and everything inside it
//   - Only the project owner or an ADMIN member can change the project,
//     delete it, or manage its memberships
//   - Non-members get no confirmation the project exists
package projectpolicy

import (
	"context"

	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanView reports whether the user holds any membership in the project.
// The owner always holds one: project creation writes it in the same
// transaction.
func CanView(ctx context.Context, memberships *membershipstore.Store, projectID, userID primitive.ObjectID) (bool, error) {
	return memberships.Exists(ctx, projectID, userID)
}

// CanManage reports whether the user may mutate the project or its
// memberships: the owner qualifies outright, everyone else needs an
// ADMIN membership. The role is read fresh on every call, never cached
// across requests.
func CanManage(ctx context.Context, memberships *membershipstore.Store, project *models.Project, userID primitive.ObjectID) (bool, error) {
	if project.OwnerID == userID {
		return true, nil
	}
	role, ok, err := memberships.RoleOf(ctx, project.ID, userID)
	if err != nil {
		return false, err
	}
	return ok && role == models.RoleAdmin, nil
}
