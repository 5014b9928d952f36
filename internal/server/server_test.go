package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sherif414/floattree/pkg/snapshot"
	"github.com/sherif414/floattree/pkg/store"
)

// newTestServer builds a server backed by an in-memory store.
func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	srv := New(Config{
		Addr:   ":0",
		Store:  mem,
		Logger: log.New(io.Discard),
	})
	return srv, mem
}

// demoSnapshot is a menu hierarchy with an open submenu chain.
func demoSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{Nodes: []snapshot.Node{
		{ID: "app", Label: "App"},
		{ID: "file", ParentID: "app", Label: "File", Open: true},
		{ID: "recent", ParentID: "file", Label: "Recent", Open: true},
		{ID: "edit", ParentID: "app", Label: "Edit"},
	}}
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestPutAndGetSnapshot(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPut, "/v1/snapshots/demo", demoSnapshot())
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doRequest(t, srv, http.MethodGet, "/v1/snapshots/demo", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, body %s", rec.Code, rec.Body)
	}

	var got snapshot.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.NodeCount() != 4 {
		t.Errorf("NodeCount = %d, want 4", got.NodeCount())
	}
}

func TestPutRejectsInvalidSnapshot(t *testing.T) {
	srv, _ := newTestServer(t)

	// Two roots.
	bad := snapshot.Snapshot{Nodes: []snapshot.Node{
		{ID: "a"},
		{ID: "b"},
	}}
	rec := doRequest(t, srv, http.MethodPut, "/v1/snapshots/bad", bad)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusBadRequest, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_SNAPSHOT") {
		t.Errorf("body missing error code: %s", rec.Body)
	}
}

func TestGetMissingSnapshot(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/v1/snapshots/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "SNAPSHOT_NOT_FOUND") {
		t.Errorf("body missing error code: %s", rec.Body)
	}
}

func TestListSnapshots(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/v1/snapshots", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var empty struct {
		Snapshots []string `json:"snapshots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &empty); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(empty.Snapshots) != 0 {
		t.Errorf("expected no snapshots, got %v", empty.Snapshots)
	}

	doRequest(t, srv, http.MethodPut, "/v1/snapshots/one", demoSnapshot())
	doRequest(t, srv, http.MethodPut, "/v1/snapshots/two", demoSnapshot())

	rec = doRequest(t, srv, http.MethodGet, "/v1/snapshots", nil)
	var got struct {
		Snapshots []string `json:"snapshots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Snapshots) != 2 {
		t.Errorf("len = %d, want 2: %v", len(got.Snapshots), got.Snapshots)
	}
}

func TestDeleteSnapshot(t *testing.T) {
	srv, _ := newTestServer(t)
	doRequest(t, srv, http.MethodPut, "/v1/snapshots/demo", demoSnapshot())

	rec := doRequest(t, srv, http.MethodDelete, "/v1/snapshots/demo", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/v1/snapshots/demo", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second DELETE status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSetOpenCascades(t *testing.T) {
	srv, _ := newTestServer(t)
	doRequest(t, srv, http.MethodPut, "/v1/snapshots/demo", demoSnapshot())

	// Closing "file" must also close its open descendant "recent".
	rec := doRequest(t, srv, http.MethodPost, "/v1/snapshots/demo/nodes/file/open", setOpenRequest{Open: false})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var got snapshot.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if open := got.OpenIDs(); len(open) != 0 {
		t.Errorf("OpenIDs = %v, want none", open)
	}

	// The change is persisted.
	rec = doRequest(t, srv, http.MethodGet, "/v1/snapshots/demo/open", nil)
	var openResp struct {
		Open []string `json:"open"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &openResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(openResp.Open) != 0 {
		t.Errorf("persisted open = %v, want none", openResp.Open)
	}
}

func TestSetOpenUnknownNode(t *testing.T) {
	srv, _ := newTestServer(t)
	doRequest(t, srv, http.MethodPut, "/v1/snapshots/demo", demoSnapshot())

	rec := doRequest(t, srv, http.MethodPost, "/v1/snapshots/demo/nodes/ghost/open", setOpenRequest{Open: true})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusNotFound, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "NODE_NOT_FOUND") {
		t.Errorf("body missing error code: %s", rec.Body)
	}
}

func TestTopmost(t *testing.T) {
	srv, _ := newTestServer(t)
	doRequest(t, srv, http.MethodPut, "/v1/snapshots/demo", demoSnapshot())

	rec := doRequest(t, srv, http.MethodGet, "/v1/snapshots/demo/topmost", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Topmost []string `json:"topmost"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Topmost) != 1 || got.Topmost[0] != "file" {
		t.Errorf("topmost = %v, want [file]", got.Topmost)
	}
}

func TestRenderDOT(t *testing.T) {
	srv, _ := newTestServer(t)
	doRequest(t, srv, http.MethodPut, "/v1/snapshots/demo", demoSnapshot())

	rec := doRequest(t, srv, http.MethodGet, "/v1/snapshots/demo/render?format=dot", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "digraph") {
		t.Errorf("body is not DOT: %s", rec.Body)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	srv, _ := newTestServer(t)
	doRequest(t, srv, http.MethodPut, "/v1/snapshots/demo", demoSnapshot())

	rec := doRequest(t, srv, http.MethodGet, "/v1/snapshots/demo/render?format=gif", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
