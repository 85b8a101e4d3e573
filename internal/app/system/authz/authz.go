// internal/app/system/authz/authz.go

// Package authz provides request-context helpers for handlers. Roles
// here are per-project, so anything beyond "who is calling" lives in
// the policy packages, which consult the memberships collection.
package authz

import (
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the authenticated user, their id, and a found flag.
// ok=false means the request never passed RequireSignedIn; handlers
// behind the middleware can treat that as a programming error but
// should still fail closed.
func UserCtx(r *http.Request) (*models.User, primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok || u == nil {
		return nil, primitive.NilObjectID, false
	}
	return u, u.ID, true
}
