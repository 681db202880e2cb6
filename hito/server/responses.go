package server

import (
	"encoding/json"
	"net/http"

	"github.com/iomz/hito/hito"
)

// Response is the envelope of every API reply
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// sendJSON writes a JSON response with the given status
func sendJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// success sends data with 200
func success(w http.ResponseWriter, data any) {
	sendJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// badRequest sends a 400 with message
func badRequest(w http.ResponseWriter, message string) {
	sendJSON(w, http.StatusBadRequest, Response{Error: message})
}

// sendError maps err onto a status code: bad input is 400, missing
// resources are 404, everything else is 500
func sendError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case hito.IsInvalid(err):
		status = http.StatusBadRequest
	case hito.IsNotFound(err):
		status = http.StatusNotFound
	}
	sendJSON(w, status, Response{Error: err.Error()})
}

// decode reads a JSON request body into v, answering 400 on failure
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// requireField answers 400 when a required request field is empty
func requireField(w http.ResponseWriter, name, value string) bool {
	if value == "" {
		badRequest(w, "missing required field: "+name)
		return false
	}
	return true
}
