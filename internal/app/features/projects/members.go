// internal/app/features/projects/members.go
package projects

import (
	"context"
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleListMembers returns the project's member list. Any member can
// see who else is in the project.
func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	project, ok := h.loadVisibleProject(ctx, w, r, userID)
	if !ok {
		return
	}

	members, err := h.memberList(ctx, project.ID)
	if err != nil {
		h.Log.Warn("list members", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, members)
}

// HandleAddMember adds a user to the project. The owner-or-admin check
// runs here even though the registry enforces its own invariants;
// authorization stays at the edge, consistency stays in the store.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	var req addMemberRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "invalid request body")
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "user_id is not a valid id")
		return
	}
	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		httpjson.Validation(w, httpjson.CodeValidationFailed, `role must be "ADMIN" or "MEMBER"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	project, ok := h.loadVisibleProject(ctx, w, r, userID)
	if !ok {
		return
	}

	memberships := membershipstore.New(h.DB)
	allowed, err := projectpolicy.CanManage(ctx, memberships, project, userID)
	if err != nil {
		h.Log.Warn("add member: role check", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !allowed {
		httpjson.Forbidden(w, "only the project owner or an admin can add members")
		return
	}

	already, err := memberships.Exists(ctx, project.ID, targetID)
	if err != nil {
		h.Log.Warn("add member: existence check", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if already {
		httpjson.Validation(w, httpjson.CodeAlreadyMember, "user is already a member of this project")
		return
	}

	if _, err := memberships.Add(ctx, project.ID, targetID, role); err != nil {
		switch err {
		case membershipstore.ErrUserNotFound:
			httpjson.NotFound(w)
		case membershipstore.ErrDuplicateMembership:
			// Lost the race against a concurrent add; the unique index
			// kept the registry consistent.
			httpjson.Error(w, http.StatusConflict, httpjson.CodeConflict, "user is already a member of this project")
		default:
			h.Log.Warn("add member", zap.Error(err))
			httpjson.Internal(w)
		}
		return
	}

	members, err := h.memberList(ctx, project.ID)
	if err != nil {
		h.Log.Warn("add member: assemble response", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusCreated, members)
}

// HandleRemoveMember removes a user's membership. The owner's own
// membership is load-bearing and cannot be removed.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		httpjson.NotFound(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	project, ok := h.loadVisibleProject(ctx, w, r, userID)
	if !ok {
		return
	}

	memberships := membershipstore.New(h.DB)
	allowed, err := projectpolicy.CanManage(ctx, memberships, project, userID)
	if err != nil {
		h.Log.Warn("remove member: role check", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !allowed {
		httpjson.Forbidden(w, "only the project owner or an admin can remove members")
		return
	}
	if targetID == project.OwnerID {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "the project owner's membership cannot be removed")
		return
	}

	if err := memberships.Remove(ctx, project.ID, targetID); err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w)
			return
		}
		h.Log.Warn("remove member", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.NoContent(w)
}

func (h *Handler) memberList(ctx context.Context, projectID primitive.ObjectID) ([]memberResponse, error) {
	memberships, err := membershipstore.New(h.DB).ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	names, err := userstore.New(h.DB).NamesByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toMemberResponses(memberships, names), nil
}
