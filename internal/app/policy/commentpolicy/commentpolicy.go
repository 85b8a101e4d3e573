// Package commentpolicy provides authorization policies for comments.
//
// Authorization rules:
//   - Any member of the comment's project can read it
//   - By default any member can edit or delete it; with strict
//     ownership enabled, only the author, the project owner, or an
//     ADMIN member may
package commentpolicy

import (
	"context"

	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanAccess reports whether the user is a member of the comment's
// project. The project id is denormalized onto the comment so this
// needs no task lookup.
func CanAccess(ctx context.Context, memberships *membershipstore.Store, comment *models.Comment, userID primitive.ObjectID) (bool, error) {
	return memberships.Exists(ctx, comment.ProjectID, userID)
}

// CanModify reports whether the user may edit or delete the comment.
func CanModify(ctx context.Context, memberships *membershipstore.Store, project *models.Project, comment *models.Comment, userID primitive.ObjectID, strict bool) (bool, error) {
	member, err := memberships.Exists(ctx, comment.ProjectID, userID)
	if err != nil {
		return false, err
	}
	if !member {
		return false, nil
	}
	if !strict {
		return true, nil
	}
	if comment.UserID == userID {
		return true, nil
	}
	return projectpolicy.CanManage(ctx, memberships, project, userID)
}
