package ai

import (
	"context"

	"github.com/relately/backend/internal/model/chat"
)

// staticReply serves deployments without model credentials so the chat
// flow still completes end to end.
const staticReply = "I understand you're having concerns about your relationship. Would you like to tell me more about what's troubling you? I'm here to listen and offer support without judgment."

// StaticClient is a Responder that always returns the same reply. Used
// when the model endpoint is not configured, and in tests.
type StaticClient struct{}

func NewStaticClient() *StaticClient {
	return &StaticClient{}
}

func (c *StaticClient) GetChatResponse(_ context.Context, _ []chat.Message) (string, error) {
	return staticReply, nil
}
