package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"yakugen/app"
	"yakugen/domain/puzzle"
	apperrors "yakugen/internal/errors"
	"yakugen/internal/report"
	"yakugen/ports"
)

// Server exposes sampling and batch generation over HTTP.
type Server struct {
	router      *chi.Mux
	sampler     *app.Sampler
	coordinator *app.BatchCoordinator
	repo        ports.PuzzleRepository // nil when persistence is disabled
	defaultN    int
}

// Config holds server construction options.
type Config struct {
	DefaultCandidateCount int
}

// NewServer wires routes and middleware.
func NewServer(sampler *app.Sampler, coordinator *app.BatchCoordinator, repo ports.PuzzleRepository, config Config) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		sampler:     sampler,
		coordinator: coordinator,
		repo:        repo,
		defaultN:    config.DefaultCandidateCount,
	}
	if s.defaultN <= 0 {
		s.defaultN = 5
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/api/sample", s.handleSample)
	s.router.Post("/api/batch", s.handleBatch)
	s.router.Get("/api/batches", s.handleListBatches)
	s.router.Get("/api/batches/{id}", s.handleGetBatch)
	s.router.Get("/api/batches/{id}/report", s.handleBatchReport)
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("[Server] listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sampleRequest struct {
	Instruction    string `json:"instruction"`
	CandidateCount int    `json:"candidate_count"`
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Instruction == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("instruction is required"))
		return
	}
	if req.CandidateCount == 0 {
		req.CandidateCount = s.defaultN
	}

	result, err := s.sampler.Sample(r.Context(), app.ParseInstruction(req.Instruction), req.CandidateCount)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

type batchRequest struct {
	Instructions   []string `json:"instructions"`
	CandidateCount int      `json:"candidate_count"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.CandidateCount == 0 {
		req.CandidateCount = s.defaultN
	}

	result, err := s.coordinator.RunBatch(r.Context(), app.ParseInstructions(req.Instructions), req.CandidateCount)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("persistence is not configured"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	summaries, err := s.repo.ListBatches(r.Context(), limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if summaries == nil {
		summaries = []puzzle.GlobalSummary{}
	}
	writeData(w, http.StatusOK, summaries)
}

func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	batch, ok := s.loadBatch(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, batch)
}

func (s *Server) handleBatchReport(w http.ResponseWriter, r *http.Request) {
	batch, ok := s.loadBatch(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.RenderBatchHTML(batch))
}

func (s *Server) loadBatch(w http.ResponseWriter, r *http.Request) (*puzzle.BatchResult, bool) {
	if s.repo == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("persistence is not configured"))
		return nil, false
	}
	batch, err := s.repo.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return batch, true
}

func writeData(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeData(w, status, map[string]string{"error": err.Error()})
}

// writeAppError maps structured error codes to HTTP statuses.
func writeAppError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	}
	writeError(w, status, err)
}
