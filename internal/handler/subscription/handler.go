package subscription

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/relately/backend/internal/middleware"
	subscriptionService "github.com/relately/backend/internal/service/subscription"
	"github.com/relately/backend/pkg/utils"
)

type Handler struct {
	svc *subscriptionService.Service
}

func New(svc *subscriptionService.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/subscription", func(r chi.Router) {
		r.Get("/", h.handleStatus)
		r.Post("/verify", h.handleVerify)
	})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		ProductID string `json:"productId"`
		Receipt   string `json:"receipt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	row, err := h.svc.Verify(r.Context(), userID, payload.ProductID, payload.Receipt)
	if err != nil {
		if errors.Is(err, subscriptionService.ErrEmptyReceipt) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to verify purchase")
		return
	}

	utils.RespondJSON(w, http.StatusOK, row)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	row, err := h.svc.Status(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch subscription status")
		return
	}

	utils.RespondJSON(w, http.StatusOK, row)
}
