// internal/app/features/comments/routes.go
package comments

import (
	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// TaskRoutes is the sub-router the tasks feature mounts at
// /tasks/{taskID}/comments. Authentication comes from the parent.
func TaskRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleListTaskComments)
	r.Post("/", h.HandleCreateComment)

	return r
}

// Routes serves /comments/{commentID}.
func Routes(h *Handler, am *auth.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)

		pr.Get("/{commentID}", h.HandleViewComment)
		pr.Put("/{commentID}", h.HandleUpdateComment)
		pr.Patch("/{commentID}", h.HandleUpdateComment)
		pr.Delete("/{commentID}", h.HandleDeleteComment)
	})

	return r
}
