// Package taskpolicy provides authorization policies for tasks.
//
// Authorization rules:
//   - Any member of the task's project can view the task
//   - By default any member can also update or delete it; with strict
//     ownership enabled, mutations require the task's creator, the
//     project owner, or an ADMIN member
//   - An assignee must be a member of the task's project at the time
//     of the write; a later removal does not clear the assignment
package taskpolicy

import (
	"context"

	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanAccess reports whether the user is a member of the task's project.
func CanAccess(ctx context.Context, memberships *membershipstore.Store, task *models.Task, userID primitive.ObjectID) (bool, error) {
	return memberships.Exists(ctx, task.ProjectID, userID)
}

// CanModify reports whether the user may update or delete the task.
// With strict off, membership alone is enough. With strict on, the
// creator keeps control of their own tasks and owners/admins keep
// control of everything.
func CanModify(ctx context.Context, memberships *membershipstore.Store, project *models.Project, task *models.Task, userID primitive.ObjectID, strict bool) (bool, error) {
	member, err := memberships.Exists(ctx, task.ProjectID, userID)
	if err != nil {
		return false, err
	}
	if !member {
		return false, nil
	}
	if !strict {
		return true, nil
	}
	if task.CreatedBy == userID {
		return true, nil
	}
	return projectpolicy.CanManage(ctx, memberships, project, userID)
}

// ValidAssignee reports whether the candidate holds a membership in the
// project and may therefore be assigned a task in it.
func ValidAssignee(ctx context.Context, memberships *membershipstore.Store, projectID, candidate primitive.ObjectID) (bool, error) {
	return memberships.Exists(ctx, projectID, candidate)
}
