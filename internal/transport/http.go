// Package transport exposes the climb-log service as a JSON-over-HTTP API.
package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tmorrell/cruxlog/internal/domain/climb"
)

// Server wires HTTP handlers.
type Server struct {
	svc    *climb.Service
	logger *slog.Logger
}

// NewRouter creates the API router. When ui is non-nil it is mounted at the
// root to serve the web front end alongside the API.
func NewRouter(svc *climb.Service, logger *slog.Logger, ui http.Handler) *chi.Mux {
	r := chi.NewRouter()

	srv := &Server{svc: svc, logger: logger}

	r.Get("/api/health", srv.handleHealth)
	r.Get("/api/stats", srv.handleStats)
	r.Route("/api/logs", func(r chi.Router) {
		r.Get("/", srv.handleList)
		r.Post("/", srv.handleCreate)
		r.Get("/{id}", srv.handleGet)
		r.Put("/{id}", srv.handleUpdate)
		r.Delete("/{id}", srv.handleDelete)
		r.Get("/{id}/image", srv.handleImage)
	})

	if ui != nil {
		r.Mount("/", ui)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	opts := climb.ListOptions{
		Search: strings.TrimSpace(params.Get("q")),
		Sort:   climb.SortKey(strings.TrimSpace(params.Get("sort"))),
	}
	if page, err := strconv.Atoi(params.Get("page")); err == nil {
		opts.Page = page
	}
	if size, err := strconv.Atoi(params.Get("pageSize")); err == nil {
		opts.PageSize = size
	}
	for _, env := range parseCSV(params.Get("env")) {
		opts.Environments = append(opts.Environments, climb.Environment(env))
	}
	for _, typ := range parseCSV(params.Get("type")) {
		opts.Types = append(opts.Types, climb.ClimbType(typ))
	}
	for _, prog := range parseCSV(params.Get("progress")) {
		opts.Progress = append(opts.Progress, climb.Progress(prog))
	}

	result, err := s.svc.List(r.Context(), opts)
	if err != nil {
		s.internalError(w, "list logs", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	log, err := s.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, climb.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		s.internalError(w, "get log", err)
		return
	}

	writeJSON(w, http.StatusOK, log)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, img, _, err := parseLogRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	log, err := s.svc.Create(r.Context(), in, img)
	if err != nil {
		var verr *climb.ValidationError
		if errors.As(err, &verr) {
			writeFieldErrors(w, verr.Fields)
			return
		}
		s.internalError(w, "create log", err)
		return
	}

	writeJSON(w, http.StatusCreated, log)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	in, img, removeImage, err := parseLogRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	log, err := s.svc.Update(r.Context(), chi.URLParam(r, "id"), in, img, removeImage)
	if err != nil {
		var verr *climb.ValidationError
		switch {
		case errors.As(err, &verr):
			writeFieldErrors(w, verr.Fields)
		case errors.Is(err, climb.ErrNotFound):
			writeError(w, http.StatusNotFound, "Not found")
		default:
			s.internalError(w, "update log", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, log)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, climb.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		s.internalError(w, "delete log", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	img, err := s.svc.Image(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, climb.ErrNoImage) {
			writeError(w, http.StatusNotFound, "No image")
			return
		}
		s.internalError(w, "get image", err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(img.Size, 10))
	_, _ = w.Write(img.Data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Stats(r.Context())
	if err != nil {
		s.internalError(w, "compute stats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	if s.logger != nil {
		s.logger.Error("request failed", "op", op, "error", err)
	}
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func parseCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
