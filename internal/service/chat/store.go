// Package chat owns the per-user conversation state: which sessions exist,
// which one is current, and the message list the client renders. The
// remote store stays authoritative; every send reconciles against it.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/relately/backend/internal/model/chat"
	"github.com/relately/backend/internal/service/safety"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSendInFlight    = errors.New("a send for this session is already in flight")

	// ErrAssistantTurn marks a send where the user's message was persisted
	// but the assistant's reply could not be produced or saved. The
	// returned history is still valid.
	ErrAssistantTurn = errors.New("assistant reply unavailable")
)

// welcomeMessageID never appears in the remote store; the welcome message
// is synthesized locally when a session starts.
const welcomeMessageID = "welcome"

const welcomeContent = `Hello, I'm Dr. Relate, your relationship advisor. I'm here to help you navigate your relationship questions and challenges.

You can ask me about:
• Communication strategies
• Managing conflicts
• Setting healthy boundaries
• Building trust and intimacy
• Recognizing relationship patterns

Feel free to share what's on your mind, and we can explore it together. What relationship topic would you like guidance on today?`

func welcomeMessage() chat.Message {
	return chat.Message{
		ID:        welcomeMessageID,
		Role:      chat.RoleAssistant,
		Content:   welcomeContent,
		CreatedAt: time.Now().UTC(),
	}
}

// Responder produces an assistant reply for an ordered history.
type Responder interface {
	GetChatResponse(ctx context.Context, history []chat.Message) (string, error)
}

// Store is the single authority for one user's sessions. Methods are safe
// for concurrent use; the mutex is never held across a network call, and a
// per-session in-flight guard rejects re-entrant sends instead of queueing
// them.
type Store struct {
	mu        sync.Mutex
	userID    string
	gateway   SessionGateway
	responder Responder
	sessions  []chat.Session
	currentID string
	sending   map[string]bool
}

func NewStore(gateway SessionGateway, responder Responder, userID string) *Store {
	return &Store{
		userID:    userID,
		gateway:   gateway,
		responder: responder,
		sending:   make(map[string]bool),
	}
}

// ListSessions refreshes the session list from the gateway, newest-updated
// first. On failure the last-known list is kept and returned alongside the
// error so the client never flashes an empty state.
func (s *Store) ListSessions(ctx context.Context) ([]chat.Session, error) {
	sessions, err := s.gateway.ListSessions(ctx, s.userID)
	if err != nil {
		log.Printf("[chat] session list fetch failed for user=%s: %v", s.userID, err)
		return s.Sessions(), fmt.Errorf("failed to load chat history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = sessions
	if s.findLocked(s.currentID) == -1 {
		if len(sessions) > 0 {
			s.currentID = sessions[0].ID
		} else {
			s.currentID = ""
		}
	}

	return s.snapshotLocked(), nil
}

// StartNewSession creates a session remotely, makes it current and seeds
// the local message list with the welcome message. The welcome message is
// never persisted.
func (s *Store) StartNewSession(ctx context.Context) (chat.Session, error) {
	now := time.Now().UTC()
	session := chat.Session{
		ID:        uuid.NewString(),
		UserID:    s.userID,
		Messages:  []chat.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.gateway.CreateSession(ctx, session); err != nil {
		return chat.Session{}, fmt.Errorf("failed to create chat session: %w", err)
	}

	session.Messages = []chat.Message{welcomeMessage()}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Head insertion keeps the newest-updated-first ordering without
	// re-sorting.
	s.sessions = append([]chat.Session{session}, s.sessions...)
	s.currentID = session.ID

	return cloneSession(session), nil
}

// SendMessage runs the optimistic send state machine:
//
//	Idle -> Optimistic -> Persisted | Failed
//
// The user message shows immediately with a temporary id, the safety filter
// may substitute the assistant reply, and a wholesale history re-fetch
// after the user row is saved replaces the temporary id with the persisted
// one. Assistant-turn failures return the valid history together with
// ErrAssistantTurn.
func (s *Store) SendMessage(ctx context.Context, sessionID, content string) ([]chat.Message, error) {
	optimistic := chat.NewOptimisticMessage(content)

	s.mu.Lock()
	idx := s.findLocked(sessionID)
	if idx == -1 {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if s.sending[sessionID] {
		s.mu.Unlock()
		return nil, ErrSendInFlight
	}
	s.sending[sessionID] = true
	s.sessions[idx].Messages = append(s.sessions[idx].Messages, optimistic)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.sending, sessionID)
		s.mu.Unlock()
	}()

	verdict := safety.Classify(content)

	userMessage := chat.Message{
		ID:        uuid.NewString(),
		Role:      chat.RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.gateway.SaveMessage(ctx, sessionID, userMessage); err != nil {
		// Terminal for this send. The optimistic message stays visible,
		// marked failed, so no user input is silently dropped.
		s.markFailed(sessionID, optimistic.ID)
		return nil, fmt.Errorf("failed to save your message: %w", err)
	}

	// Reconciliation point: the fetched history carries the persisted id
	// and authoritative ordering, superseding the optimistic entry.
	history, err := s.gateway.Messages(ctx, sessionID)
	if err != nil {
		log.Printf("[chat] history fetch failed after user save, session=%s: %v", sessionID, err)
		fallback := append([]chat.Message{}, userMessage)
		s.replaceMessages(sessionID, fallback, time.Now().UTC())
		return fallback, fmt.Errorf("%w: %v", ErrAssistantTurn, err)
	}

	var reply string
	if verdict != safety.VerdictSafe {
		log.Printf("[chat] safety filter triggered for session=%s", sessionID)
		reply = safety.Message(content)
	} else {
		reply, err = s.responder.GetChatResponse(ctx, history)
		if err != nil {
			s.replaceMessages(sessionID, history, time.Now().UTC())
			return history, fmt.Errorf("%w: %v", ErrAssistantTurn, err)
		}
	}

	assistantMessage := chat.Message{
		ID:        uuid.NewString(),
		Role:      chat.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.gateway.SaveMessage(ctx, sessionID, assistantMessage); err != nil {
		log.Printf("[chat] assistant save failed, session=%s: %v", sessionID, err)
		s.replaceMessages(sessionID, history, time.Now().UTC())
		return history, fmt.Errorf("%w: %v", ErrAssistantTurn, err)
	}

	now := time.Now().UTC()
	if err := s.gateway.TouchSession(ctx, sessionID, now); err != nil {
		// Not critical; the messages themselves are saved.
		log.Printf("[chat] session timestamp bump failed, session=%s: %v", sessionID, err)
	}

	final := append(history, assistantMessage)
	s.replaceMessages(sessionID, final, now)

	return final, nil
}

// SwitchToSession points current at a locally-held session. It reports
// false, leaving current untouched, when the id is unknown.
func (s *Store) SwitchToSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findLocked(sessionID) == -1 {
		return false
	}
	s.currentID = sessionID
	return true
}

// DeleteSession removes the session remotely and locally. When the current
// session is deleted, current moves to the head of the remaining list, or
// clears when none remain.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.gateway.DeleteSession(ctx, sessionID, s.userID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.sessions[:0:0]
	for _, session := range s.sessions {
		if session.ID != sessionID {
			remaining = append(remaining, session)
		}
	}
	s.sessions = remaining

	if s.currentID == sessionID {
		if len(s.sessions) > 0 {
			s.currentID = s.sessions[0].ID
		} else {
			s.currentID = ""
		}
	}

	return nil
}

// Sessions returns a copy of the in-memory session list.
func (s *Store) Sessions() []chat.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// CurrentSession returns the active session, if any.
func (s *Store) CurrentSession() (chat.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(s.currentID)
	if idx == -1 {
		return chat.Session{}, false
	}
	return cloneSession(s.sessions[idx]), true
}

// Messages returns the message list of the active session.
func (s *Store) Messages() []chat.Message {
	session, ok := s.CurrentSession()
	if !ok {
		return []chat.Message{}
	}
	return session.Messages
}

func (s *Store) markFailed(sessionID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(sessionID)
	if idx == -1 {
		return
	}
	for i := range s.sessions[idx].Messages {
		if s.sessions[idx].Messages[i].ID == messageID {
			s.sessions[idx].Messages[i].Failed = true
			return
		}
	}
}

func (s *Store) replaceMessages(sessionID string, messages []chat.Message, updatedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findLocked(sessionID)
	if idx == -1 {
		return
	}
	s.sessions[idx].Messages = append([]chat.Message{}, messages...)
	s.sessions[idx].UpdatedAt = updatedAt
}

func (s *Store) findLocked(sessionID string) int {
	if sessionID == "" {
		return -1
	}
	for i := range s.sessions {
		if s.sessions[i].ID == sessionID {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []chat.Session {
	out := make([]chat.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, cloneSession(session))
	}
	return out
}

func cloneSession(session chat.Session) chat.Session {
	clone := session
	clone.Messages = append([]chat.Message{}, session.Messages...)
	return clone
}
