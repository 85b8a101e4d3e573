// internal/app/features/projects/routes.go
package projects

import (
	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes serves /projects. The task sub-resource router is mounted by
// the caller so this package stays free of task imports.
func Routes(h *Handler, am *auth.Manager, tasks chi.Router) chi.Router {
	r := chi.NewRouter()

	// Everything under /projects requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(am.RequireSignedIn)

		// LIST / CREATE
		pr.Get("/", h.HandleListProjects)
		pr.Post("/", h.HandleCreateProject)

		// SINGLE PROJECT
		pr.Get("/{id}", h.HandleViewProject)
		pr.Put("/{id}", h.HandleUpdateProject)
		pr.Patch("/{id}", h.HandleUpdateProject)
		pr.Delete("/{id}", h.HandleDeleteProject)

		// MEMBERSHIPS
		pr.Get("/{id}/members", h.HandleListMembers)
		pr.Post("/{id}/members", h.HandleAddMember)
		pr.Delete("/{id}/members/{userID}", h.HandleRemoveMember)

		// TASKS (project-scoped list/create)
		pr.Mount("/{id}/tasks", tasks)
	})

	return r
}
