package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"

	errorvalues "github.com/Sofya-Khabibulina/HabitTracker/internal/error_values"
	"github.com/Sofya-Khabibulina/HabitTracker/pkg/httputil"
)

// Handlers for the chat front-end. The front-end resolves the platform
// user id and calls /admit before dispatching anything else; a rejected
// or banned answer means the update must be dropped.

type AdmitResponse struct {
	Allowed     bool    `json:"allowed"`
	Banned      bool    `json:"banned"`
	Reason      string  `json:"reason,omitempty"`
	WaitSeconds float64 `json:"wait_seconds,omitempty"`
}

type SetLanguageRequest struct {
	Language string `json:"language"`
}

type TextRequest struct {
	Text string `json:"text"`
}

func (s *Server) AdmitAction(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	userID, err := userIDFromURL(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	decision := s.guard.Admit(userID, time.Now())
	resp := AdmitResponse{
		Allowed:     decision.Allowed,
		Reason:      string(decision.Reason),
		WaitSeconds: decision.Wait.Seconds(),
	}
	if decision.Allowed && s.store.IsBanned(userID) {
		resp.Allowed = false
		resp.Banned = true
	}
	if resp.Allowed {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		if err := s.store.TouchActivity(ctx, userID); err != nil {
			logger.Error("touching activity failed", slog.String("error", err.Error()))
		}
		if err := s.store.IncrementCommandCount(ctx); err != nil {
			logger.Error("counting command failed", slog.String("error", err.Error()))
		}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) SetLanguage(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	userID, err := userIDFromURL(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	var req SetLanguageRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil || req.Language == "" {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.store.UpsertUserLanguage(ctx, userID, req.Language); err != nil {
		logger.Error("setting language failed", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error saving language", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"user_id":  userID,
		"language": req.Language,
	})
}

func (s *Server) ListHabits(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromURL(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	habits := s.store.ListHabits(userID)
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"habits":  habits,
	})
}

func (s *Server) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	userID, err := userIDFromURL(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	habitID := habitIDFromURL(r)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	deleted, err := s.store.SoftDeleteHabit(ctx, userID, habitID)
	if err != nil {
		logger.Error("deleting habit failed", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error deleting habit", nil)
		return
	}
	if !deleted {
		httputil.WriteErrorResponse(w, http.StatusNotFound, "habit not found", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"habit_id": habitID,
		"deleted":  true,
	})
}

func (s *Server) CheckIn(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	userID, err := userIDFromURL(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	habitID := habitIDFromURL(r)
	today := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	recorded, err := s.store.RecordCheckIn(ctx, userID, habitID, today)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit not found", nil)
			return
		}
		logger.Error("recording check-in failed", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error recording check-in", nil)
		return
	}
	resp := map[string]any{
		"habit_id": habitID,
		"recorded": recorded,
	}
	if recorded {
		resp["streak"] = s.store.CurrentStreak(userID, habitID, today)
		resp["quote"] = s.quotes.Get(r.Context())
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
}

func (s *Server) HabitProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromURL(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	habitID := habitIDFromURL(r)
	habit, err := s.store.GetHabit(userID, habitID)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusNotFound, "habit not found", nil)
		return
	}
	today := time.Now()
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"habit":            habit,
		"streak":           s.store.CurrentStreak(userID, habitID, today),
		"total_checkins":   s.store.TotalCheckIns(userID, habitID),
		"checked_in_today": s.store.HasCheckedInToday(userID, habitID, today),
	})
}

func (s *Server) WizardStart(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromURL(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	s.wizard.Start(userID)
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"step": "awaiting_name",
	})
}

func (s *Server) WizardName(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromURL(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	var req TextRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := s.wizard.SubmitName(userID, req.Text); err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidHabitName):
			httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, "habit name length out of range", nil)
		case errors.Is(err, errorvalues.ErrNoActiveWizard), errors.Is(err, errorvalues.ErrUnexpectedMessage):
			httputil.WriteErrorResponse(w, http.StatusConflict, "no habit creation step expects a name", nil)
		default:
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal wizard error", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"step": "awaiting_frequency",
	})
}

func (s *Server) WizardFrequency(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	userID, err := userIDFromURL(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	var req TextRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	habitID, err := s.wizard.SubmitFrequency(ctx, userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUnknownFrequency):
			httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, "unknown frequency", nil)
		case errors.Is(err, errorvalues.ErrNoActiveWizard), errors.Is(err, errorvalues.ErrUnexpectedMessage):
			httputil.WriteErrorResponse(w, http.StatusConflict, "no habit creation step expects a frequency", nil)
		default:
			logger.Error("finishing wizard failed", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error creating habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"habit_id": habitID,
		"step":     "idle",
	})
}

func (s *Server) WizardCancel(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromURL(r)
	if err != nil {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	s.wizard.Cancel(userID)
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"step": "idle",
	})
}

func (s *Server) Quote(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"quote": s.quotes.Get(r.Context()),
	})
}

func habitIDFromURL(r *http.Request) string {
	return chi.URLParam(r, "habitID")
}
