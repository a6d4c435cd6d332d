// Package api exposes the interview engine over HTTP. Sessions live in
// memory for their duration; finished interviews are persisted as reports.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/candidate"
	"github.com/spigell/interview-coach/internal/interview"
	"github.com/spigell/interview-coach/internal/jobspec"
	"github.com/spigell/interview-coach/internal/report"
	"github.com/spigell/interview-coach/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps are the collaborators the HTTP layer needs. Store may be nil; then
// finished interviews are not persisted.
type Deps struct {
	Controller *interview.Controller
	Store      *storage.Store
	Token      string
	Logger     *zap.Logger
}

type server struct {
	deps Deps
	log  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*interview.Session
}

// NewHandler builds the HTTP handler with bearer authentication.
func NewHandler(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &server{
		deps:     deps,
		log:      log,
		sessions: make(map[string]*interview.Session),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(BearerAuth(deps.Token))

	r.Post("/sessions", s.handleCreateSession)
	r.Get("/sessions/{id}", s.handleGetSession)
	r.Post("/sessions/{id}/answer", s.handleAnswer)
	r.Post("/sessions/{id}/skip", s.handleSkip)
	r.Post("/sessions/{id}/finish", s.handleFinish)
	r.Get("/reports", s.handleListReports)
	r.Get("/reports/{id}", s.handleGetReport)

	return r
}

type createSessionRequest struct {
	ResumeText string `json:"resume_text"`
	JDText     string `json:"jd_text"`
}

type answerRequest struct {
	Answer           string  `json:"answer"`
	TimeTakenSeconds float64 `json:"time_taken_seconds"`
}

// sessionView is the API shape of a session: progress, the pending question
// and, once the interview has ended, the report.
type sessionView struct {
	ID              string              `json:"id"`
	Role            string              `json:"role"`
	QuestionNumber  int                 `json:"question_number"`
	CurrentQuestion *interview.Question `json:"current_question,omitempty"`
	Difficulty      string              `json:"difficulty"`
	Terminated      bool                `json:"terminated"`
	Report          *report.Report      `json:"report,omitempty"`
}

func (s *server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return
	}
	if req.JDText == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "jd_text is required")
		return
	}

	profile := candidate.Analyze(req.ResumeText)
	requirements := jobspec.Parse(req.JDText)

	id := uuid.New().String()
	sess := s.deps.Controller.Start(r.Context(), id, profile, requirements)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.log.Info("session created via API",
		zap.String("session_id", id),
		zap.String("role", requirements.Role),
	)

	s.writeSession(w, http.StatusCreated, sess)
}

func (s *server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		httpError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	s.writeSession(w, http.StatusOK, sess)
}

func (s *server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		httpError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return
	}

	s.mu.Lock()
	err := s.deps.Controller.Submit(r.Context(), sess, req.Answer, req.TimeTakenSeconds)
	s.mu.Unlock()
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	s.persistIfFinished(sess)
	s.writeSession(w, http.StatusOK, sess)
}

func (s *server) handleSkip(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		httpError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}

	s.mu.Lock()
	err := s.deps.Controller.Skip(r.Context(), sess)
	s.mu.Unlock()
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	s.persistIfFinished(sess)
	s.writeSession(w, http.StatusOK, sess)
}

func (s *server) handleFinish(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		httpError(w, http.StatusNotFound, "not_found", "session not found")
		return
	}

	s.mu.Lock()
	err := s.deps.Controller.Finish(sess)
	s.mu.Unlock()
	if err != nil {
		s.writeSessionError(w, err)
		return
	}

	s.persistIfFinished(sess)
	s.writeSession(w, http.StatusOK, sess)
}

func (s *server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		httpError(w, http.StatusNotImplemented, "api_error", "persistence is not configured")
		return
	}

	records, err := s.deps.Store.ListInterviews(50)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to list interviews: %v", err)
		return
	}
	if records == nil {
		records = []storage.InterviewRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (s *server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		httpError(w, http.StatusNotImplemented, "api_error", "persistence is not configured")
		return
	}

	record, err := s.deps.Store.GetInterview(chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "report not found")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "failed to get report: %v", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

func (s *server) lookup(id string) (*interview.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// persistIfFinished stores the report once the session has terminated. A
// storage failure is logged, not surfaced; the report is still returned to
// the client.
func (s *server) persistIfFinished(sess *interview.Session) {
	if !sess.Terminated || s.deps.Store == nil {
		return
	}

	rep, err := report.FromSession(sess)
	if err != nil {
		s.log.Error("report generation failed", zap.String("session_id", sess.ID), zap.Error(err))
		return
	}
	reportJSON, err := json.Marshal(rep)
	if err != nil {
		s.log.Error("report serialization failed", zap.String("session_id", sess.ID), zap.Error(err))
		return
	}

	record := storage.InterviewRecord{
		ID:              sess.ID,
		CreatedAt:       time.Now(),
		Role:            sess.Requirements.Role,
		ExperienceLevel: string(sess.Requirements.ExperienceLevel),
		QuestionCount:   len(sess.Questions),
		ReadinessScore:  rep.ReadinessScore,
		HiringIndicator: rep.HiringIndicator,
		EarlyTerminated: rep.EarlyTerminated,
		ReportJSON:      string(reportJSON),
	}
	if err := s.deps.Store.SaveInterview(record); err != nil {
		s.log.Error("failed to persist interview", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

func (s *server) writeSession(w http.ResponseWriter, status int, sess *interview.Session) {
	view := sessionView{
		ID:             sess.ID,
		Role:           sess.Requirements.Role,
		QuestionNumber: len(sess.Questions),
		Difficulty:     string(sess.CurrentDifficulty),
		Terminated:     sess.Terminated,
	}
	if sess.Current != nil {
		q := *sess.Current
		view.CurrentQuestion = &q
		view.QuestionNumber = len(sess.Questions) + 1
	}
	if sess.Terminated {
		if rep, err := report.FromSession(sess); err == nil {
			view.Report = rep
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(view)
}

// writeSessionError maps the controller sentinels onto HTTP statuses.
func (s *server) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interview.ErrBlankAnswer), errors.Is(err, interview.ErrTooFewQuestions):
		httpError(w, http.StatusUnprocessableEntity, "invalid_request_error", "%v", err)
	case errors.Is(err, interview.ErrSessionTerminated):
		httpError(w, http.StatusConflict, "invalid_request_error", "%v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
