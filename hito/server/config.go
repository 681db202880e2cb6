package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/iomz/hito/types"
)

// AssignmentRequest links an image and a category
type AssignmentRequest struct {
	Image      string `json:"image"`
	CategoryID string `json:"category_id"`
}

// DirectoryRequest names a directory and, for set, its sidecar location
type DirectoryRequest struct {
	Directory string `json:"directory"`
	Path      string `json:"path,omitempty"`
}

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	var req DirectoryRequest
	if !decode(w, r, &req) || !requireField(w, "directory", req.Directory) {
		return
	}

	m, err := s.app.Assignments(req.Directory)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, m)
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req AssignmentRequest
	if !decode(w, r, &req) || !requireField(w, "image", req.Image) || !requireField(w, "category_id", req.CategoryID) {
		return
	}

	if err := s.app.Assign(req.Image, req.CategoryID); err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]bool{"assigned": true})
}

func (s *Server) handleUnassign(w http.ResponseWriter, r *http.Request) {
	var req AssignmentRequest
	if !decode(w, r, &req) || !requireField(w, "image", req.Image) || !requireField(w, "category_id", req.CategoryID) {
		return
	}

	removed, err := s.app.Unassign(req.Image, req.CategoryID)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]bool{"removed": removed})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req AssignmentRequest
	if !decode(w, r, &req) || !requireField(w, "image", req.Image) || !requireField(w, "category_id", req.CategoryID) {
		return
	}

	assigned, err := s.app.Toggle(req.Image, req.CategoryID)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]bool{"assigned": assigned})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.app.Store().Categories()
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, categories)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req types.CategoryData
	if !decode(w, r, &req) {
		return
	}

	added, err := s.app.Store().AddCategory(req)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, added)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req types.CategoryData
	if !decode(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := s.app.Store().UpdateCategory(req); err != nil {
		sendError(w, err)
		return
	}
	success(w, req)
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dirs := r.URL.Query()["directory"]

	if err := s.app.RemoveCategory(id, dirs...); err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]string{"removed": id})
}

func (s *Server) handleListHotkeys(w http.ResponseWriter, r *http.Request) {
	hotkeys, err := s.app.Store().Hotkeys()
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, hotkeys)
}

func (s *Server) handleAddHotkey(w http.ResponseWriter, r *http.Request) {
	var req types.HotkeyData
	if !decode(w, r, &req) {
		return
	}

	added, err := s.app.Store().AddHotkey(req)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, added)
}

func (s *Server) handleUpdateHotkey(w http.ResponseWriter, r *http.Request) {
	var req types.HotkeyData
	if !decode(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	if req.Modifiers == nil {
		req.Modifiers = []string{}
	}

	if err := s.app.Store().UpdateHotkey(req); err != nil {
		sendError(w, err)
		return
	}
	success(w, req)
}

func (s *Server) handleRemoveHotkey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.app.Store().RemoveHotkey(id); err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]string{"removed": id})
}

func (s *Server) handleListDirectoryPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := s.app.Store().DirectoryPaths()
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, paths)
}

func (s *Server) handleGetDirectoryPath(w http.ResponseWriter, r *http.Request) {
	var req DirectoryRequest
	if !decode(w, r, &req) || !requireField(w, "directory", req.Directory) {
		return
	}

	path, ok, err := s.app.Store().GetDirectoryPath(req.Directory)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]any{"path": path, "found": ok})
}

func (s *Server) handleSetDirectoryPath(w http.ResponseWriter, r *http.Request) {
	var req DirectoryRequest
	if !decode(w, r, &req) || !requireField(w, "directory", req.Directory) || !requireField(w, "path", req.Path) {
		return
	}

	if err := s.app.Store().SetDirectoryPath(req.Directory, req.Path); err != nil {
		sendError(w, err)
		return
	}
	success(w, req)
}

func (s *Server) handleClearDirectoryPath(w http.ResponseWriter, r *http.Request) {
	var req DirectoryRequest
	if !decode(w, r, &req) || !requireField(w, "directory", req.Directory) {
		return
	}

	if err := s.app.Store().RemoveDirectoryPath(req.Directory); err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]string{"cleared": req.Directory})
}
