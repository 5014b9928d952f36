package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sherif414/floattree/pkg/errors"
	"github.com/sherif414/floattree/pkg/render"
	"github.com/sherif414/floattree/pkg/snapshot"
	"github.com/sherif414/floattree/pkg/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "failed to list snapshots"))
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"snapshots": ids})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.loadSnapshot(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSnapshotID(id); err != nil {
		s.writeError(w, err)
		return
	}

	var snap snapshot.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := snap.Validate(); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "invalid snapshot"))
		return
	}

	if err := s.store.Save(r.Context(), id, snap); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "failed to save snapshot %s", id))
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Store.Delete is idempotent; check existence first so the API can
	// report missing snapshots.
	if _, err := s.loadSnapshot(r); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "failed to delete snapshot %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// setOpenRequest is the body for POST .../nodes/{nodeID}/open.
type setOpenRequest struct {
	Open bool `json:"open"`
}

// handleSetOpen toggles a node's open state with full cascade semantics
// and persists the resulting snapshot.
func (s *Server) handleSetOpen(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	nodeID := chi.URLParam(r, "nodeID")

	var req setOpenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	snap, err := s.loadSnapshot(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	coord, err := snapshot.ToCoordinator(snap, nil)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "stored snapshot is invalid"))
		return
	}
	if !coord.SetOpen(nodeID, req.Open) {
		s.writeError(w, errors.New(errors.ErrCodeNodeNotFound, "node %q does not exist in snapshot %q", nodeID, id))
		return
	}

	updated := snapshot.FromCoordinator(coord)
	if err := s.store.Save(r.Context(), id, updated); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStore, err, "failed to save snapshot %s", id))
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleOpenNodes(w http.ResponseWriter, r *http.Request) {
	snap, err := s.loadSnapshot(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	open := snap.OpenIDs()
	if open == nil {
		open = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"open": open})
}

func (s *Server) handleTopmost(w http.ResponseWriter, r *http.Request) {
	snap, err := s.loadSnapshot(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	topmost := snap.TopmostIDs()
	if topmost == nil {
		topmost = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"topmost": topmost})
}

// handleRender returns the snapshot as a diagram. The format query
// parameter selects dot, svg, or png output (default svg).
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	if err := errors.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	snap, err := s.loadSnapshot(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	detailed := r.URL.Query().Get("detailed") == "true"
	dot := render.ToDOT(snap, render.Options{Detailed: detailed})

	switch format {
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(dot))
	case "json":
		s.writeJSON(w, http.StatusOK, snap)
	case "svg":
		data, err := render.SVG(dot)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeRender, err, "failed to render SVG"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(data)
	case "png":
		data, err := render.PNG(dot)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeRender, err, "failed to render PNG"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}
}

// loadSnapshot loads the snapshot named by the id URL parameter,
// translating store sentinels into structured API errors.
func (s *Server) loadSnapshot(r *http.Request) (snapshot.Snapshot, error) {
	id := chi.URLParam(r, "id")
	snap, err := s.store.Load(r.Context(), id)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return snapshot.Snapshot{}, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %q does not exist", id)
		}
		if stderrors.Is(err, store.ErrInvalidID) {
			return snapshot.Snapshot{}, errors.New(errors.ErrCodeInvalidInput, "invalid snapshot ID %q", id)
		}
		return snapshot.Snapshot{}, errors.Wrap(errors.ErrCodeStore, err, "failed to load snapshot %s", id)
	}
	return snap, nil
}
