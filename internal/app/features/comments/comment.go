// internal/app/features/comments/comment.go
package comments

import (
	"context"
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/policy/commentpolicy"
	commentstore "github.com/dalemusser/taskhub/internal/app/store/comments"
	membershipstore "github.com/dalemusser/taskhub/internal/app/store/memberships"
	projectstore "github.com/dalemusser/taskhub/internal/app/store/projects"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/taskhub/internal/app/system/httpjson"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleViewComment returns a single comment to members of its
// project.
func (h *Handler) HandleViewComment(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	comment, ok := h.loadAccessibleComment(ctx, w, r, userID)
	if !ok {
		return
	}

	names, err := userstore.New(h.DB).NamesByID(ctx, []primitive.ObjectID{comment.UserID})
	if err != nil {
		h.Log.Warn("view comment: user names", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, toCommentResponse(comment, names))
}

// HandleUpdateComment replaces a comment's content. PUT and PATCH are
// equivalent here: content is the only mutable field.
func (h *Handler) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	var req commentRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Validation(w, httpjson.CodeValidationFailed, "invalid request body")
		return
	}
	content := htmlsanitize.Text(req.Content)
	if content == "" {
		httpjson.Validation(w, httpjson.CodeEmptyContent, "comment content cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	comment, ok := h.loadAccessibleComment(ctx, w, r, userID)
	if !ok {
		return
	}
	if !h.authorizeCommentMutation(ctx, w, comment, userID) {
		return
	}

	updated, err := commentstore.New(h.DB).UpdateContent(ctx, comment.ID, content)
	if err != nil {
		h.Log.Warn("update comment", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	names, err := userstore.New(h.DB).NamesByID(ctx, []primitive.ObjectID{updated.UserID})
	if err != nil {
		h.Log.Warn("update comment: user names", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Respond(w, http.StatusOK, toCommentResponse(updated, names))
}

// HandleDeleteComment removes a comment.
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "not signed in")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	comment, ok := h.loadAccessibleComment(ctx, w, r, userID)
	if !ok {
		return
	}
	if !h.authorizeCommentMutation(ctx, w, comment, userID) {
		return
	}

	if err := commentstore.New(h.DB).Delete(ctx, comment.ID); err != nil {
		h.Log.Warn("delete comment", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.NoContent(w)
}

// loadAccessibleComment parses {commentID}, loads the comment, and
// requires membership in its project. Missing comments are 404,
// foreign projects 403.
func (h *Handler) loadAccessibleComment(ctx context.Context, w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) (*models.Comment, bool) {
	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "commentID"))
	if err != nil {
		httpjson.NotFound(w)
		return nil, false
	}

	comment, err := commentstore.New(h.DB).GetByID(ctx, commentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.NotFound(w)
			return nil, false
		}
		h.Log.Warn("load comment", zap.Error(err))
		httpjson.Internal(w)
		return nil, false
	}

	member, err := commentpolicy.CanAccess(ctx, membershipstore.New(h.DB), comment, userID)
	if err != nil {
		h.Log.Warn("load comment: membership check", zap.Error(err))
		httpjson.Internal(w)
		return nil, false
	}
	if !member {
		httpjson.Forbidden(w, "you are not a member of this comment's project")
		return nil, false
	}
	return comment, true
}

// authorizeCommentMutation applies the strict-ownership policy when it
// is enabled.
func (h *Handler) authorizeCommentMutation(ctx context.Context, w http.ResponseWriter, comment *models.Comment, userID primitive.ObjectID) bool {
	if !h.Strict {
		return true
	}

	project, err := projectstore.New(h.DB).GetByID(ctx, comment.ProjectID)
	if err != nil {
		h.Log.Warn("comment mutation: load project", zap.Error(err))
		httpjson.Internal(w)
		return false
	}
	allowed, err := commentpolicy.CanModify(ctx, membershipstore.New(h.DB), project, comment, userID, true)
	if err != nil {
		h.Log.Warn("comment mutation: ownership check", zap.Error(err))
		httpjson.Internal(w)
		return false
	}
	if !allowed {
		httpjson.Forbidden(w, "only the comment's author or a project admin can change it")
		return false
	}
	return true
}
