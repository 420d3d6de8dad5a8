package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles a persisted message can carry. The welcome message is assistant-role
// but synthetic and never written to the gateway.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const tempIDPrefix = "temp-"

// Message is a single turn within a session. Optimistic messages carry a
// temporary id until reconciliation replaces them with the persisted row.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Failed    bool      `json:"failed,omitempty"`
}

// NewOptimisticMessage fabricates a user message for immediate display,
// before any network call has settled.
func NewOptimisticMessage(content string) Message {
	return Message{
		ID:        tempIDPrefix + uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// Optimistic reports whether the message still carries a temporary id.
func (m Message) Optimistic() bool {
	return strings.HasPrefix(m.ID, tempIDPrefix)
}
