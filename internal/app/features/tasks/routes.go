// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// ProjectRoutes is the sub-router the projects feature mounts at
// /projects/{id}/tasks. Authentication comes from the parent router.
func ProjectRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleListProjectTasks)
	r.Post("/", h.HandleCreateTask)

	return r
}

// Routes serves /tasks/{taskID} plus the comments sub-resource, which
// the caller passes in so this package stays free of comment imports.
func Routes(h *Handler, am *auth.Manager, comments chi.Router) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)

		pr.Get("/{taskID}", h.HandleViewTask)
		pr.Put("/{taskID}", h.HandleUpdateTask)
		pr.Patch("/{taskID}", h.HandleUpdateTask)
		pr.Delete("/{taskID}", h.HandleDeleteTask)

		pr.Mount("/{taskID}/comments", comments)
	})

	return r
}
