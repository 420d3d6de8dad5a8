package chat

import "time"

// Session is one conversation thread between a user and the advisor persona.
// Messages are append-only and ordered by CreatedAt.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
