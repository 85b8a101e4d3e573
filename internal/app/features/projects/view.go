// internal/app/features/projects/view.go
package projects

import (
	"context"
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/policy/projectpolicy"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	projectstore "github.com/dalemusser/taskhub/internal/app/store/projects"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleViewProject returns a single project with its member list.
// Non-members get 404: a project they cannot see might as well not
// exist.
func (h *Handler) HandleViewProject(w http.ResponseWriter, r *http.Request) {
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

	detail, err := h.projectDetail(ctx, project)
	if err != nil {
		h.Log.Warn("view project: assemble response", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, detail)
}

// loadVisibleProject parses the {id} URL param, loads the project, and
// hides it behind a 404 unless the caller holds a membership. On any
// failure the response has already been written and ok is false.
func (h *Handler) loadVisibleProject(ctx context.Context, w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) (*models.Project, bool) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w)
		return nil, false
	}

	project, err := projectstore.New(h.DB).GetByID(ctx, projectID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w)
			return nil, false
		}
		h.Log.Warn("load project", zap.Error(err))
		httpjson.Internal(w)
		return nil, false
	}

	visible, err := projectpolicy.CanView(ctx, membershipstore.New(h.DB), project.ID, userID)
	if err != nil {
		h.Log.Warn("load project: membership check", zap.Error(err))
		httpjson.Internal(w)
		return nil, false
	}
	if !visible {
		httpjson.NotFound(w)
		return nil, false
	}
	return project, true
}

// projectDetail assembles the detail response with the embedded member
// list and {id, name} user references.
func (h *Handler) projectDetail(ctx context.Context, p *models.Project) (projectDetailResponse, error) {
	memberships, err := membershipstore.New(h.DB).ListByProject(ctx, p.ID)
	if err != nil {
		return projectDetailResponse{}, err
	}

	ids := []primitive.ObjectID{p.OwnerID}
	for _, m := range memberships {
		ids = append(ids, m.UserID)
	}
	names, err := userstore.New(h.DB).NamesByID(ctx, ids)
	if err != nil {
		return projectDetailResponse{}, err
	}

	return projectDetailResponse{
		projectResponse: toProjectResponse(p, names),
		Members:         toMemberResponses(memberships, names),
	}, nil
}
