package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iomz/hito/hito"
	"github.com/iomz/hito/hito/server"
	"github.com/iomz/hito/testutil"
	"github.com/iomz/hito/types"
)

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type harness struct {
	srv *httptest.Server
	dir string
}

func newHarness(t *testing.T) harness {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "photos")
	testutil.WriteFile(t, dir, "b-small.jpg", 20*1024)
	testutil.WriteFile(t, dir, "a-large.png", 50*1024)
	testutil.WriteFile(t, dir, "c-medium.gif", 30*1024)

	app := hito.New(hito.NewConfigStore(filepath.Join(root, "config.json")))
	srv := httptest.NewServer(server.New(app).Handler())
	t.Cleanup(srv.Close)
	return harness{srv: srv, dir: dir}
}

func (h harness) do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, h.srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: response is not JSON: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	status, env := h.do(t, http.MethodGet, "/health", nil)
	if status != http.StatusOK || !env.Success {
		t.Errorf("health: %d %+v", status, env)
	}
}

func TestQuery(t *testing.T) {
	h := newHarness(t)

	status, env := h.do(t, http.MethodPost, "/api/images/query", server.QueryRequest{
		Directory:     h.dir,
		SortKey:       "size",
		SortDirection: "desc",
	})
	if status != http.StatusOK {
		t.Fatalf("query failed: %d %s", status, env.Error)
	}

	var result hito.BrowseResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatal(err)
	}
	want := []string{"a-large.png", "c-medium.gif", "b-small.jpg"}
	if diff := cmp.Diff(want, testutil.Names(result.Images)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	t.Run("filter by size between", func(t *testing.T) {
		status, env := h.do(t, http.MethodPost, "/api/images/query", server.QueryRequest{
			Directory: h.dir,
			Filter: types.FilterInput{
				SizeOperator:   "between",
				SizeValue:      "60",
				SizeValueUpper: "25",
			},
		})
		if status != http.StatusOK {
			t.Fatalf("query failed: %d %s", status, env.Error)
		}
		var result hito.BrowseResult
		if err := json.Unmarshal(env.Data, &result); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"a-large.png", "c-medium.gif"}, testutil.Names(result.Images)); diff != "" {
			t.Errorf("filter mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestErrorStatuses(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"malformed JSON", http.MethodPost, "/api/images/query", "not an object", http.StatusBadRequest},
		{"missing directory field", http.MethodPost, "/api/images/query", map[string]string{}, http.StatusBadRequest},
		{"directory does not exist", http.MethodPost, "/api/images/query", server.QueryRequest{Directory: filepath.Join(h.dir, "nope")}, http.StatusNotFound},
		{"query a file", http.MethodPost, "/api/images/query", server.QueryRequest{Directory: filepath.Join(h.dir, "a-large.png")}, http.StatusBadRequest},
		{"unknown category", http.MethodPut, "/api/categories/ghost", types.CategoryData{Name: "Ghost"}, http.StatusNotFound},
		{"invalid category", http.MethodPost, "/api/categories", types.CategoryData{Name: ""}, http.StatusBadRequest},
		{"load missing image", http.MethodPost, "/api/images/load", server.ImageRequest{Path: filepath.Join(h.dir, "none.png")}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := h.do(t, tt.method, tt.path, tt.body)
			if status != tt.want {
				t.Errorf("status = %d, want %d (%s)", status, tt.want, env.Error)
			}
			if env.Success || env.Error == "" {
				t.Errorf("expected error envelope, got %+v", env)
			}
		})
	}
}

func TestCategoryAndAssignmentFlow(t *testing.T) {
	h := newHarness(t)
	image := filepath.Join(h.dir, "a-large.png")

	status, env := h.do(t, http.MethodPost, "/api/categories", types.CategoryData{Name: "Keep", Color: "#112233"})
	if status != http.StatusOK {
		t.Fatalf("add category: %d %s", status, env.Error)
	}
	var cat types.CategoryData
	if err := json.Unmarshal(env.Data, &cat); err != nil || cat.ID == "" {
		t.Fatalf("bad category payload %s: %v", env.Data, err)
	}

	status, env = h.do(t, http.MethodPost, "/api/assignments/toggle", server.AssignmentRequest{Image: image, CategoryID: cat.ID})
	if status != http.StatusOK || string(env.Data) != `{"assigned":true}` {
		t.Fatalf("toggle: %d %s %s", status, env.Data, env.Error)
	}

	status, env = h.do(t, http.MethodPost, "/api/images/query", server.QueryRequest{
		Directory: h.dir,
		Filter:    types.FilterInput{Category: "uncategorized"},
		SortKey:   "name",
	})
	if status != http.StatusOK {
		t.Fatalf("query: %d %s", status, env.Error)
	}
	var result hito.BrowseResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"b-small.jpg", "c-medium.gif"}, testutil.Names(result.Images)); diff != "" {
		t.Errorf("uncategorized mismatch (-want +got):\n%s", diff)
	}
	if result.Summary.PerCategory[cat.ID] != 1 {
		t.Errorf("unexpected summary %+v", result.Summary)
	}

	status, env = h.do(t, http.MethodDelete, "/api/categories/"+cat.ID+"?directory="+url.QueryEscape(h.dir), nil)
	if status != http.StatusOK {
		t.Fatalf("remove category: %d %s", status, env.Error)
	}

	status, env = h.do(t, http.MethodPost, "/api/assignments/list", server.DirectoryRequest{Directory: h.dir})
	if status != http.StatusOK || string(env.Data) != "{}" {
		t.Errorf("assignments after removal: %d %s", status, env.Data)
	}
}

func TestDirectoryPathEndpoints(t *testing.T) {
	h := newHarness(t)
	custom := filepath.Join(t.TempDir(), "tags.json")

	if status, env := h.do(t, http.MethodPost, "/api/directories/set", server.DirectoryRequest{Directory: h.dir, Path: custom}); status != http.StatusOK {
		t.Fatalf("set: %d %s", status, env.Error)
	}

	_, env := h.do(t, http.MethodPost, "/api/directories/get", server.DirectoryRequest{Directory: h.dir})
	var got struct {
		Path  string `json:"path"`
		Found bool   `json:"found"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatal(err)
	}
	if !got.Found || got.Path != custom {
		t.Errorf("get returned %+v", got)
	}

	if status, env := h.do(t, http.MethodPost, "/api/directories/clear", server.DirectoryRequest{Directory: h.dir}); status != http.StatusOK {
		t.Fatalf("clear: %d %s", status, env.Error)
	}
	_, env = h.do(t, http.MethodGet, "/api/directories", nil)
	if string(env.Data) != "{}" {
		t.Errorf("expected empty index, got %s", env.Data)
	}
}
