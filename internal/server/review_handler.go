// Package server provides the HTTP JSON API for the review scheduler.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rbarros/studytrack/internal/calendar"
	"github.com/rbarros/studytrack/internal/review"
	"github.com/rbarros/studytrack/internal/statistics"
	"github.com/rbarros/studytrack/internal/study"
)

// ReviewHandler serves the pending-review backlog and the completion
// transaction over HTTP.
type ReviewHandler struct {
	service *review.Service
	track   string
	now     func() calendar.Date
}

// NewReviewHandler creates a ReviewHandler scoped to one exam track.
func NewReviewHandler(service *review.Service, track string) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		track:   track,
		now:     calendar.Today,
	}
}

// RegisterRoutes attaches the handler's endpoints to mux.
func (h *ReviewHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/reviews", h.handleListReviews)
	mux.HandleFunc("POST /api/v1/reviews/{id}/complete", h.handleCompleteReview)
	mux.HandleFunc("GET /api/v1/statistics", h.handleStatistics)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *ReviewHandler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := review.Filters{
		Subject: query.Get("subject"),
		Topic:   query.Get("topic"),
	}
	if raw := query.Get("minRelevance"); raw != "" {
		minRelevance, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid minRelevance %q", raw))
			return
		}
		filters.MinRelevance = minRelevance
	}

	classification, err := h.service.PendingReviews(r.Context(), h.track, filters)
	if err != nil {
		slog.Default().Error("failed to classify pending reviews", "track", h.track, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to load pending reviews"))
		return
	}

	writeJSON(w, http.StatusOK, classification)
}

type completeReviewRequest struct {
	TimeSpent        string `json:"timeSpent"`
	QuestionsTotal   int    `json:"questionsTotal"`
	QuestionsCorrect int    `json:"questionsCorrect"`
	ReviewDate       string `json:"reviewDate,omitempty"`
}

type completeReviewResponse struct {
	Updated     study.Record  `json:"updated"`
	Audit       *study.Record `json:"audit,omitempty"`
	Accelerated bool          `json:"accelerated"`
	AuditError  string        `json:"auditError,omitempty"`
}

func (h *ReviewHandler) handleCompleteReview(w http.ResponseWriter, r *http.Request) {
	recordID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid record id %q", r.PathValue("id")))
		return
	}

	var req completeReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	reviewDate := calendar.Date{}
	if req.ReviewDate != "" {
		reviewDate, err = calendar.Parse(req.ReviewDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid reviewDate %q", req.ReviewDate))
			return
		}
	}

	outcome, err := review.NewOutcome(req.TimeSpent, req.QuestionsCorrect, req.QuestionsTotal, reviewDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	state, err := h.service.LoadState(r.Context(), h.track)
	if err != nil {
		slog.Default().Error("failed to load scheduler state", "track", h.track, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to load records"))
		return
	}

	result, err := h.service.CompleteReview(r.Context(), state, recordID, outcome)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrRecordNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, review.ErrAlreadyComplete):
			writeError(w, http.StatusConflict, err)
		default:
			slog.Default().Error("failed to complete review", "recordID", recordID, "error", err)
			writeError(w, http.StatusInternalServerError, errors.New("failed to complete review"))
		}
		return
	}

	resp := completeReviewResponse{
		Updated:     result.Updated,
		Audit:       result.Audit,
		Accelerated: result.Accelerated,
	}
	if result.AuditErr != nil {
		slog.Default().Warn("audit record insertion failed", "recordID", recordID, "error", result.AuditErr)
		resp.AuditError = result.AuditErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ReviewHandler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	today := h.now()

	from := today.AddDays(-30)
	if raw := query.Get("from"); raw != "" {
		parsed, err := calendar.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid from date %q", raw))
			return
		}
		from = parsed
	}
	to := today
	if raw := query.Get("to"); raw != "" {
		parsed, err := calendar.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid to date %q", raw))
			return
		}
		to = parsed
	}

	state, err := h.service.LoadState(r.Context(), h.track)
	if err != nil {
		slog.Default().Error("failed to load scheduler state", "track", h.track, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to load records"))
		return
	}

	writeJSON(w, http.StatusOK, statistics.Build(state.Records(), h.track, from, to))
}
