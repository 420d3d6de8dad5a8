package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relately/backend/internal/database"
	"github.com/relately/backend/internal/model/chat"
)

// SessionGateway is the persistence boundary for sessions and messages. The
// remote store is the source of truth; in-memory state is reconciled
// against it wholesale.
type SessionGateway interface {
	CreateSession(ctx context.Context, session chat.Session) error
	ListSessions(ctx context.Context, userID string) ([]chat.Session, error)
	Messages(ctx context.Context, sessionID string) ([]chat.Message, error)
	SaveMessage(ctx context.Context, sessionID string, message chat.Message) error
	TouchSession(ctx context.Context, sessionID string, at time.Time) error
	DeleteSession(ctx context.Context, sessionID, userID string) error
}

// Gateway implements SessionGateway over the relational store.
type Gateway struct {
	db *gorm.DB
}

func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

func (g *Gateway) CreateSession(ctx context.Context, session chat.Session) error {
	id, err := uuid.Parse(session.ID)
	if err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}
	userID, err := uuid.Parse(session.UserID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	row := database.ChatSession{
		ID:        id,
		UserID:    userID,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
	return g.db.WithContext(ctx).Create(&row).Error
}

// ListSessions returns the user's sessions newest-updated first, each with
// its full ordered message list.
func (g *Gateway) ListSessions(ctx context.Context, userID string) ([]chat.Session, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	var rows []database.ChatSession
	if err := g.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []chat.Session{}, nil
	}

	sessionIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		sessionIDs = append(sessionIDs, row.ID)
	}

	var messageRows []database.ChatMessage
	if err := g.db.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Order("created_at ASC").
		Find(&messageRows).Error; err != nil {
		return nil, err
	}

	messagesBySession := make(map[uuid.UUID][]chat.Message)
	for _, row := range messageRows {
		messagesBySession[row.SessionID] = append(messagesBySession[row.SessionID], toDomainMessage(row))
	}

	sessions := make([]chat.Session, 0, len(rows))
	for _, row := range rows {
		messages := messagesBySession[row.ID]
		if messages == nil {
			messages = []chat.Message{}
		}
		sessions = append(sessions, chat.Session{
			ID:        row.ID.String(),
			UserID:    row.UserID.String(),
			Messages:  messages,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	return sessions, nil
}

// Messages returns the ordered history for one session.
func (g *Gateway) Messages(ctx context.Context, sessionID string) ([]chat.Message, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid session id: %w", err)
	}

	var rows []database.ChatMessage
	if err := g.db.WithContext(ctx).
		Where("session_id = ?", sid).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	messages := make([]chat.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, toDomainMessage(row))
	}
	return messages, nil
}

func (g *Gateway) SaveMessage(ctx context.Context, sessionID string, message chat.Message) error {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}
	mid, err := uuid.Parse(message.ID)
	if err != nil {
		return fmt.Errorf("invalid message id: %w", err)
	}

	row := database.ChatMessage{
		ID:        mid,
		SessionID: sid,
		Role:      message.Role,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
	return g.db.WithContext(ctx).Create(&row).Error
}

func (g *Gateway) TouchSession(ctx context.Context, sessionID string, at time.Time) error {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}

	return g.db.WithContext(ctx).
		Model(&database.ChatSession{}).
		Where("id = ?", sid).
		Update("updated_at", at).Error
}

// DeleteSession removes a session and its messages. Children go first so a
// store without cascading foreign keys never leaks orphaned rows.
func (g *Gateway) DeleteSession(ctx context.Context, sessionID, userID string) error {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	if err := g.db.WithContext(ctx).Delete(&database.ChatMessage{}, "session_id = ?", sid).Error; err != nil {
		return err
	}
	return g.db.WithContext(ctx).Delete(&database.ChatSession{}, "id = ? AND user_id = ?", sid, uid).Error
}

func toDomainMessage(row database.ChatMessage) chat.Message {
	return chat.Message{
		ID:        row.ID.String(),
		Role:      row.Role,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
	}
}
