package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/relately/backend/internal/middleware"
	chatService "github.com/relately/backend/internal/service/chat"
	"github.com/relately/backend/pkg/utils"
)

// Handler exposes the chat session store over HTTP.
type Handler struct {
	manager *chatService.Manager
}

func New(manager *chatService.Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/chat", func(r chi.Router) {
		r.Get("/sessions", h.handleListSessions)
		r.Post("/sessions", h.handleStartSession)
		r.Post("/sessions/{sessionID}/messages", h.handleSendMessage)
		r.Post("/sessions/{sessionID}/switch", h.handleSwitchSession)
		r.Delete("/sessions/{sessionID}", h.handleDeleteSession)
	})
}

func (h *Handler) store(r *http.Request) (*chatService.Store, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		return nil, false
	}
	return h.manager.ForUser(userID.String()), true
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	payload := map[string]any{}
	sessions, err := store.ListSessions(r.Context())
	if err != nil {
		// The stale list is still served so the client never flashes empty.
		payload["error"] = "Failed to load chat history"
	}
	payload["sessions"] = sessions
	if current, ok := store.CurrentSession(); ok {
		payload["currentSessionId"] = current.ID
	}

	utils.RespondJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	session, err := store.StartNewSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create new chat")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Content) == "" {
		utils.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	messages, err := store.SendMessage(r.Context(), sessionID, payload.Content)
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, chatService.ErrSendInFlight):
		utils.RespondError(w, http.StatusConflict, "a message is already being sent")
	case errors.Is(err, chatService.ErrAssistantTurn):
		// The user's message was saved; only the assistant turn is missing.
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"messages": messages,
			"error":    "The advisor could not reply. Your message was saved.",
		})
	default:
		utils.RespondError(w, http.StatusInternalServerError, "Failed to send message. Please try again.")
	}
}

func (h *Handler) handleSwitchSession(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if !store.SwitchToSession(sessionID) {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"currentSessionId": sessionID,
		"messages":         store.Messages(),
	})
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	store, ok := h.store(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if err := store.DeleteSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to delete conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
