package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/relately/backend/internal/middleware"
	profileService "github.com/relately/backend/internal/service/profile"
	"github.com/relately/backend/pkg/utils"
)

type Handler struct {
	svc *profileService.Service
}

func New(svc *profileService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Patch("/", h.handleUpdate)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	row, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	utils.RespondJSON(w, http.StatusOK, row)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(updates) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	row, err := h.svc.Update(r.Context(), userID, updates)
	if err != nil {
		if errors.Is(err, profileService.ErrUnknownField) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	utils.RespondJSON(w, http.StatusOK, row)
}
