package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
)

const (
	defaultPerPage = 30
	maxPerPage     = 100
)

var errNotFound = errors.New("not found")

// server keeps milestones and workflow runs per repository, keyed by
// "owner/name".
type server struct {
	mu    sync.RWMutex
	repos map[string][]domain.Milestone
	runs  map[string][]workflowRun
}

func newServer() *server {
	return &server{
		repos: make(map[string][]domain.Milestone),
		runs:  make(map[string][]workflowRun),
	}
}

// milestoneJSON is the GitHub wire form of a milestone. Undated milestones
// carry "due_on": null.
type milestoneJSON struct {
	Number     int64                 `json:"number"`
	Title      string                `json:"title"`
	State      domain.MilestoneState `json:"state"`
	DueOn      *time.Time            `json:"due_on"`
	OpenIssues int                   `json:"open_issues"`
}

func toJSON(m domain.Milestone) milestoneJSON {
	out := milestoneJSON{
		Number:     m.Number,
		Title:      m.Title,
		State:      m.State,
		OpenIssues: m.OpenIssues,
	}
	if !m.DueOn.IsZero() {
		due := m.DueOn.UTC()
		out.DueOn = &due
	}
	return out
}

// workflowRun records one workflow_dispatch event.
type workflowRun struct {
	ID         int64             `json:"id"`
	Path       string            `json:"path"`
	HeadBranch string            `json:"head_branch"`
	Event      string            `json:"event"`
	Inputs     map[string]string `json:"inputs,omitempty"`
}

// requestIDHeader mirrors the header GitHub sets on every response.
const requestIDHeader = "X-GitHub-Request-Id"

func (s *server) routes(logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, accessLog(logger))
	r.Route("/repos/{owner}/{repo}/milestones", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Patch("/{number}", s.handleUpdate)
	})
	r.Route("/repos/{owner}/{repo}/actions", func(r chi.Router) {
		r.Post("/workflows/{workflow}/dispatches", s.handleDispatch)
		r.Get("/runs", s.handleRuns)
	})
	return r
}

func repoKey(r *http.Request) string {
	return domain.RepositoryRef{Owner: chi.URLParam(r, "owner"), Name: chi.URLParam(r, "repo")}.String()
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := q.Get("state")
	if state == "" {
		state = string(types.MilestoneOpen)
	}
	switch state {
	case string(types.MilestoneOpen), string(types.MilestoneClosed), "all":
	default:
		writeError(w, http.StatusUnprocessableEntity, "invalid state "+state)
		return
	}
	perPage, err := intParam(q.Get("per_page"), defaultPerPage)
	if err != nil || perPage < 1 {
		writeError(w, http.StatusBadRequest, "invalid per_page")
		return
	}
	perPage = min(perPage, maxPerPage)
	page, err := intParam(q.Get("page"), 1)
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}

	s.mu.RLock()
	matched := make([]milestoneJSON, 0)
	for _, m := range s.repos[repoKey(r)] {
		if state == "all" || string(m.State) == state {
			matched = append(matched, toJSON(m))
		}
	}
	s.mu.RUnlock()

	start := min((page-1)*perPage, len(matched))
	end := min(start+perPage, len(matched))
	writeJSON(w, http.StatusOK, matched[start:end])
}

type milestoneInput struct {
	Title      *string    `json:"title"`
	State      *string    `json:"state"`
	DueOn      *time.Time `json:"due_on"`
	OpenIssues *int       `json:"open_issues"`
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var in milestoneInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Title == nil || *in.Title == "" {
		writeError(w, http.StatusUnprocessableEntity, "title is required")
		return
	}

	key := repoKey(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if titleTaken(s.repos[key], *in.Title, -1) {
		writeError(w, http.StatusUnprocessableEntity, "milestone "+*in.Title+" already exists")
		return
	}
	m := domain.Milestone{
		Number: int64(len(s.repos[key]) + 1),
		Title:  *in.Title,
		State:  types.MilestoneOpen,
	}
	if err := apply(&m, in); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.repos[key] = append(s.repos[key], m)
	writeJSON(w, http.StatusCreated, toJSON(m))
}

func (s *server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, errNotFound.Error())
		return
	}
	var in milestoneInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := repoKey(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	milestones := s.repos[key]
	i := sort.Search(len(milestones), func(i int) bool { return milestones[i].Number >= number })
	if i == len(milestones) || milestones[i].Number != number {
		writeError(w, http.StatusNotFound, errNotFound.Error())
		return
	}
	if in.Title != nil {
		if *in.Title == "" {
			writeError(w, http.StatusUnprocessableEntity, "title must not be empty")
			return
		}
		if titleTaken(milestones, *in.Title, i) {
			writeError(w, http.StatusUnprocessableEntity, "milestone "+*in.Title+" already exists")
			return
		}
	}
	m := milestones[i]
	if err := apply(&m, in); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	milestones[i] = m
	writeJSON(w, http.StatusOK, toJSON(m))
}

// titleTaken reports whether a milestone other than milestones[skip] is
// titled title.
func titleTaken(milestones []domain.Milestone, title string, skip int) bool {
	for i, m := range milestones {
		if i != skip && m.Title == title {
			return true
		}
	}
	return false
}

type dispatchInput struct {
	Ref    string            `json:"ref"`
	Inputs map[string]string `json:"inputs"`
}

func (s *server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var in dispatchInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Ref == "" {
		writeError(w, http.StatusUnprocessableEntity, "ref is required")
		return
	}

	key := repoKey(r)
	s.mu.Lock()
	s.runs[key] = append(s.runs[key], workflowRun{
		ID:         int64(len(s.runs[key]) + 1),
		Path:       ".github/workflows/" + chi.URLParam(r, "workflow"),
		HeadBranch: in.Ref,
		Event:      "workflow_dispatch",
		Inputs:     in.Inputs,
	})
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleRuns(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	runs := append([]workflowRun{}, s.runs[repoKey(r)]...)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"total_count":   len(runs),
		"workflow_runs": runs,
	})
}

// apply copies the set fields of in onto m.
func apply(m *domain.Milestone, in milestoneInput) error {
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.State != nil {
		switch st := types.MilestoneState(*in.State); st {
		case types.MilestoneOpen, types.MilestoneClosed:
			m.State = st
		default:
			return errors.New("invalid state " + *in.State)
		}
	}
	if in.DueOn != nil {
		m.DueOn = in.DueOn.UTC()
	}
	if in.OpenIssues != nil {
		if *in.OpenIssues < 0 {
			return errors.New("open_issues must not be negative")
		}
		m.OpenIssues = *in.OpenIssues
	}
	return nil
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(requestIDHeader, uuid.New().String())
		next.ServeHTTP(w, r)
	})
}

func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("request",
				"id", w.Header().Get(requestIDHeader),
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}
