package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	errorvalues "github.com/Sofya-Khabibulina/HabitTracker/internal/error_values"
	"github.com/Sofya-Khabibulina/HabitTracker/pkg/httputil"
)

type LoginRequest struct {
	AdminID  int64  `json:"admin_id"`
	Password string `json:"password"`
}

type BanRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if !s.adminIDs[req.AdminID] {
		logger.Error("login error: unknown admin", slog.Int64("admin_id", req.AdminID))
		httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid admin id or password", nil)
		return
	}
	if err = bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)); err != nil {
		logger.Error("login error: wrong password", slog.Int64("admin_id", req.AdminID))
		httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid admin id or password", errorvalues.ErrWrongCredentials)
		return
	}
	token, err := s.jwtService.GenerateToken(req.AdminID)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"admin_id": req.AdminID,
		"token":    token,
	})
	logger.Info("successful admin login")
}

func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	snapshot := s.store.Statistics()
	httputil.WriteJSONResponse(w, http.StatusOK, snapshot)
	logger.Info("served statistics snapshot")
}

func (s *Server) BanUser(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	adminID, err := GetAdminIDFromContext(r)
	if err != nil {
		logger.Error("ban error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	targetID, err := userIDFromURL(r)
	if err != nil {
		logger.Error("ban error: invalid user id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	var req BanRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("ban error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	banned, err := s.store.Ban(ctx, targetID, req.Reason, adminID)
	if err != nil {
		logger.Error("ban error: store error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during ban", nil)
		return
	}
	if !banned {
		logger.Info("ban skipped: already banned", slog.Int64("user_id", targetID))
		httputil.WriteErrorResponse(w, http.StatusConflict, "user is already banned", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"user_id": targetID,
		"banned":  true,
	})
	logger.Info("user banned", slog.Int64("user_id", targetID))
}

func (s *Server) UnbanUser(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	adminID, err := GetAdminIDFromContext(r)
	if err != nil {
		logger.Error("unban error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	targetID, err := userIDFromURL(r)
	if err != nil {
		logger.Error("unban error: invalid user id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	unbanned, err := s.store.Unban(ctx, targetID, adminID)
	if err != nil {
		logger.Error("unban error: store error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during unban", nil)
		return
	}
	if !unbanned {
		logger.Info("unban skipped: not banned", slog.Int64("user_id", targetID))
		httputil.WriteErrorResponse(w, http.StatusConflict, "user isn't banned", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"user_id": targetID,
		"banned":  false,
	})
	logger.Info("user unbanned", slog.Int64("user_id", targetID))
}

func (s *Server) BanStatus(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	targetID, err := userIDFromURL(r)
	if err != nil {
		logger.Error("ban status error: invalid user id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid user id", nil)
		return
	}
	banned, record := s.store.BanStatus(targetID)
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"user_id": targetID,
		"banned":  banned,
		"record":  record,
	})
}

func (s *Server) BroadcastRecipients(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	users := s.store.ActiveUsersForBroadcast()
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"count": len(users),
		"users": users,
	})
	logger.Info("served broadcast recipients", slog.Int("count", len(users)))
}

func userIDFromURL(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, errors.New("empty user id")
	}
	return strconv.ParseInt(raw, 10, 64)
}
