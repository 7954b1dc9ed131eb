package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
	"github.com/agentic-research/locus/internal/logger"
	"github.com/agentic-research/locus/internal/markers"
	"github.com/agentic-research/locus/internal/widget"
)

// maxBody caps request bodies on the JSON endpoints.
const maxBody = 1 << 16

type Server struct {
	widget *widget.Widget
	tmpl   *template.Template
}

func NewServer(w *widget.Widget) (*Server, error) {
	if w == nil {
		return nil, errors.New("web: missing widget")
	}
	tmpl, err := template.New("index").Parse(indexHTML)
	if err != nil {
		return nil, err
	}
	return &Server{widget: w, tmpl: tmpl}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /static/app.css", s.handleCSS)
	mux.HandleFunc("GET /static/app.js", s.handleJS)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/move", s.handleMove)
	mux.HandleFunc("POST /api/markers/{id}/click", s.handleMarkerClick)
	mux.HandleFunc("POST /api/toggle", s.handleToggle)
	mux.HandleFunc("POST /api/reload", s.handleReload)
	return withSecurityHeaders(mux)
}

type indexModel struct {
	State api.State
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, indexModel{State: s.widget.Snapshot()}); err != nil {
		logger.Error("render index", "error", err)
	}
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(appCSS))
}

func (s *Server) handleJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(appJS))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.widget.Snapshot())
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req api.MoveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	from, err := graph.ParseCollectionID(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.widget.Click(from, graph.NodeID(req.ID), nil)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, api.MoveResponse{Result: res.View(), State: s.widget.Snapshot()})
}

func (s *Server) handleMarkerClick(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.widget.ClickMarker(graph.NodeID(id)); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, s.widget.Snapshot())
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.widget.Toggle()
	writeJSON(w, http.StatusOK, s.widget.Snapshot())
}

// handleReload always answers with the new state; a load failure shows up
// in its load_error field.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	_ = s.widget.Reload(r.Context())
	writeJSON(w, http.StatusOK, s.widget.Snapshot())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, graph.ErrNotFound), errors.Is(err, markers.ErrNoMarker):
		return http.StatusNotFound
	case errors.Is(err, graph.ErrBadDirection):
		return http.StatusBadRequest
	case errors.Is(err, graph.ErrInvalidTree):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response", "error", err)
	}
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' https://unpkg.com; img-src 'self' data: https:; base-uri 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}
