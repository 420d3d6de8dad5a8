package checkin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/relately/backend/internal/middleware"
	checkinService "github.com/relately/backend/internal/service/checkin"
	"github.com/relately/backend/pkg/utils"
)

type Handler struct {
	svc *checkinService.Service
}

func New(svc *checkinService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/checkins", func(r chi.Router) {
		r.Get("/", h.handleHistory)
		r.Post("/", h.handleCreate)
		r.Get("/analytics", h.handleAnalytics)
		r.Patch("/{checkinID}", h.handleUpdate)
		r.Delete("/{checkinID}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		MoodScore int      `json:"moodScore"`
		Notes     string   `json:"notes"`
		Tags      []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	row, err := h.svc.Create(r.Context(), userID, payload.MoodScore, payload.Notes, payload.Tags)
	if err != nil {
		if errors.Is(err, checkinService.ErrInvalidMood) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to create check-in")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, row)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	rows, err := h.svc.History(r.Context(), userID, limit, page)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch check-in history")
		return
	}

	utils.RespondJSON(w, http.StatusOK, rows)
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	points, err := h.svc.Analytics(r.Context(), userID, r.URL.Query().Get("timeframe"))
	if err != nil {
		if errors.Is(err, checkinService.ErrInvalidRange) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to compute analytics")
		return
	}

	utils.RespondJSON(w, http.StatusOK, points)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	checkinID, err := uuid.Parse(chi.URLParam(r, "checkinID"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid check-in id")
		return
	}

	var payload struct {
		MoodScore *int     `json:"moodScore"`
		Notes     *string  `json:"notes"`
		Tags      []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	row, err := h.svc.Update(r.Context(), userID, checkinID, payload.MoodScore, payload.Notes, payload.Tags)
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusOK, row)
	case errors.Is(err, checkinService.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, "check-in not found")
	case errors.Is(err, checkinService.ErrInvalidMood):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, "failed to update check-in")
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	checkinID, err := uuid.Parse(chi.URLParam(r, "checkinID"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid check-in id")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, checkinID); err != nil {
		if errors.Is(err, checkinService.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "check-in not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete check-in")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
