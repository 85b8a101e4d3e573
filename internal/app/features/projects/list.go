// internal/app/features/projects/list.go
package projects

import (
	"context"
	"net/http"

	projectstore "github.com/dalemusser/taskhub/internal/app/store/projects"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleListProjects returns the projects the caller is a member of.
// There is no "all projects" view for anyone.
func (h *Handler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	list, err := projectstore.New(h.DB).ListForUser(ctx, userID)
	if err != nil {
		h.Log.Warn("list projects", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	ownerIDs := make([]primitive.ObjectID, 0, len(list))
	for _, p := range list {
		ownerIDs = append(ownerIDs, p.OwnerID)
	}
	names, err := userstore.New(h.DB).NamesByID(ctx, ownerIDs)
	if err != nil {
		h.Log.Warn("list projects: owner names", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	out := make([]projectResponse, 0, len(list))
	for i := range list {
		out = append(out, toProjectResponse(&list[i], names))
	}
	httpjson.Respond(w, http.StatusOK, out)
}
