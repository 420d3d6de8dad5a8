package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/relately/backend/internal/middleware"
	quizService "github.com/relately/backend/internal/service/quiz"
	"github.com/relately/backend/pkg/utils"
)

type Handler struct {
	svc *quizService.Service
}

func New(svc *quizService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/quizzes", func(r chi.Router) {
		r.Get("/", h.handleHistory)
		r.Post("/", h.handleSubmit)
		r.Get("/latest", h.handleLatest)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		Kind    string         `json:"kind"`
		Answers map[string]int `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	row, err := h.svc.SaveResult(r.Context(), userID, payload.Kind, payload.Answers)
	if err != nil {
		if errors.Is(err, quizService.ErrUnknownKind) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to save quiz result")
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

	rows, err := h.svc.History(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch quiz history")
		return
	}

	utils.RespondJSON(w, http.StatusOK, rows)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	row, err := h.svc.Latest(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch latest quiz result")
		return
	}

	// row is null when the user has not taken a quiz yet.
	utils.RespondJSON(w, http.StatusOK, map[string]any{"result": row})
}
