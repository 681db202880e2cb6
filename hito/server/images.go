package server

import (
	"net/http"

	"github.com/iomz/hito/hito/fileops"
	"github.com/iomz/hito/types"
)

// QueryRequest asks for one directory listing
type QueryRequest struct {
	Directory     string            `json:"directory"`
	Filter        types.FilterInput `json:"filter"`
	SortKey       string            `json:"sort_key,omitempty"`
	SortDirection string            `json:"sort_direction,omitempty"`
}

// ImageRequest names one image and, for copy and move, a destination directory
type ImageRequest struct {
	Path        string `json:"path"`
	Destination string `json:"destination,omitempty"`
}

// handleQuery scans a directory and returns its filtered, sorted images
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if !decode(w, r, &req) || !requireField(w, "directory", req.Directory) {
		return
	}

	filter := req.Filter.Spec()
	result, err := s.app.Browse(req.Directory, &filter, types.ParseSortSpec(req.SortKey, req.SortDirection))
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, result)
}

// handleLoadImage returns an image as a data URL
func (s *Server) handleLoadImage(w http.ResponseWriter, r *http.Request) {
	var req ImageRequest
	if !decode(w, r, &req) || !requireField(w, "path", req.Path) {
		return
	}

	url, err := s.app.LoadImage(req.Path)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]string{"data_url": url})
}

// handleParent returns the directory containing a path
func (s *Server) handleParent(w http.ResponseWriter, r *http.Request) {
	var req ImageRequest
	if !decode(w, r, &req) || !requireField(w, "path", req.Path) {
		return
	}

	parent, err := fileops.ParentDirectory(req.Path)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]string{"parent": parent})
}

// handleTrash sends an image to the trash
func (s *Server) handleTrash(w http.ResponseWriter, r *http.Request) {
	var req ImageRequest
	if !decode(w, r, &req) || !requireField(w, "path", req.Path) {
		return
	}

	trashed, err := s.app.TrashImage(req.Path)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]string{"path": trashed})
}

// handleCopy copies an image into another directory
func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	var req ImageRequest
	if !decode(w, r, &req) || !requireField(w, "path", req.Path) || !requireField(w, "destination", req.Destination) {
		return
	}

	copied, err := s.app.CopyImage(req.Path, req.Destination)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]string{"path": copied})
}

// handleMove moves an image into another directory
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req ImageRequest
	if !decode(w, r, &req) || !requireField(w, "path", req.Path) || !requireField(w, "destination", req.Destination) {
		return
	}

	moved, err := s.app.MoveImage(req.Path, req.Destination)
	if err != nil {
		sendError(w, err)
		return
	}
	success(w, map[string]string{"path": moved})
}
