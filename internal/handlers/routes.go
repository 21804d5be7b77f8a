package handlers

import "github.com/go-chi/chi/v5"

// Routes registers the API on r.
func (h *WorklistHandler) Routes(r chi.Router) {
	r.Get("/", h.Dashboard)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.ListProjects)                 // GET /projects/
		r.Get("/archived", h.ListArchivedProjects) // GET /projects/archived
		r.Get("/new", h.FormChoices)               // GET /projects/new
		r.Post("/new", h.CreateProject)            // POST /projects/new

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetProject)
			r.Get("/edit", h.EditProject)
			r.Post("/edit", h.UpdateProject)
			r.Post("/archive", h.ArchiveProject)
			r.Post("/unarchive", h.UnarchiveProject)
		})
	})

	r.Route("/admin/projects/{id}", func(r chi.Router) {
		r.Delete("/purge", h.PurgeProject) // DELETE /admin/projects/{id}/purge
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks) // ?completed=true
		r.Get("/new", h.FormChoices)
		r.Post("/new", h.CreateTask)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTask)
			r.Get("/edit", h.EditTask)
			r.Post("/edit", h.UpdateTask)
			r.Post("/complete", h.CompleteTask)
			r.Post("/snooze", h.SnoozeTask) // ?days=N or {"days": N}
		})
	})

	r.Route("/milestones", func(r chi.Router) {
		r.Get("/", h.ListMilestones)
		r.Post("/new", h.CreateMilestone)
		r.Post("/{id}/complete", h.CompleteMilestone)
		r.Post("/{id}/uncomplete", h.UncompleteMilestone)
	})

	r.Post("/updates/new", h.CreateStatusUpdate)
	r.Get("/export/", h.Export)
	r.Get("/health", h.HealthCheck)
}
