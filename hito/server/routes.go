package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// registerRoutes wires every endpoint onto the router
func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/images", func(r chi.Router) {
			r.Post("/query", s.handleQuery)
			r.Post("/load", s.handleLoadImage)
			r.Post("/parent", s.handleParent)
			r.Post("/trash", s.handleTrash)
			r.Post("/copy", s.handleCopy)
			r.Post("/move", s.handleMove)
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Post("/list", s.handleListAssignments)
			r.Post("/assign", s.handleAssign)
			r.Post("/unassign", s.handleUnassign)
			r.Post("/toggle", s.handleToggle)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleAddCategory)
			r.Put("/{id}", s.handleUpdateCategory)
			r.Delete("/{id}", s.handleRemoveCategory)
		})

		r.Route("/hotkeys", func(r chi.Router) {
			r.Get("/", s.handleListHotkeys)
			r.Post("/", s.handleAddHotkey)
			r.Put("/{id}", s.handleUpdateHotkey)
			r.Delete("/{id}", s.handleRemoveHotkey)
		})

		r.Route("/directories", func(r chi.Router) {
			r.Get("/", s.handleListDirectoryPaths)
			r.Post("/get", s.handleGetDirectoryPath)
			r.Post("/set", s.handleSetDirectoryPath)
			r.Post("/clear", s.handleClearDirectoryPath)
		})
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	success(w, map[string]string{
		"status":  "healthy",
		"service": "hito",
	})
}
