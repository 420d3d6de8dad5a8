// Package ai produces assistant replies for a conversation history using a
// fixed advisor persona and a primary/fallback model tier chain.
package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/relately/backend/internal/config"
	"github.com/relately/backend/internal/model/chat"
)

// Client wraps the completion endpoint. The primary tier is the faster and
// cheaper model; on any failure the fallback tier is tried exactly once
// with the identical prompt and history.
type Client struct {
	primary      model.ChatModel
	fallback     model.ChatModel
	historyLimit int
}

// NewClient builds the model tiers from one credential set.
func NewClient(ctx context.Context, cfg config.AIConfig) (*Client, error) {
	primary, err := cfg.NewChatModel(ctx, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create primary chat model: %w", err)
	}

	var fallback model.ChatModel
	if cfg.FallbackModel != "" && cfg.FallbackModel != cfg.Model {
		fallback, err = cfg.NewChatModel(ctx, cfg.FallbackModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create fallback chat model: %w", err)
		}
	}

	return &Client{
		primary:      primary,
		fallback:     fallback,
		historyLimit: cfg.HistoryLimit,
	}, nil
}

// GetChatResponse returns the assistant reply for the full ordered history.
// The returned string is always non-empty and user-readable. The error is
// reserved for context cancellation; every model failure degrades to a
// substitute reply instead.
func (c *Client) GetChatResponse(ctx context.Context, history []chat.Message) (string, error) {
	messages := c.buildMessages(history)

	response, err := c.primary.Generate(ctx, messages)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		log.Printf("[ai] primary tier failed, trying fallback: %v", err)

		if c.fallback == nil {
			return errorReply(err), nil
		}

		response, err = c.fallback.Generate(ctx, messages)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			log.Printf("[ai] fallback tier failed: %v", err)
			return errorReply(err), nil
		}
	}

	text := strings.TrimSpace(response.Content)
	if text == "" {
		log.Printf("[ai] model returned no text content")
		return emptyReply, nil
	}

	return text, nil
}

// buildMessages converts the trailing window of the history into model
// input, persona prompt first.
func (c *Client) buildMessages(history []chat.Message) []*schema.Message {
	messages := make([]*schema.Message, 0, c.historyLimit+1)
	messages = append(messages, schema.SystemMessage(systemPrompt))

	startIdx := 0
	if c.historyLimit > 0 && len(history) > c.historyLimit {
		startIdx = len(history) - c.historyLimit
	}

	for _, msg := range history[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return messages
}

// errorReply maps a model error to one of the canned user-facing strings.
func errorReply(err error) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "authentication") || strings.Contains(msg, "api key"):
		return authErrorReply
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests"):
		return rateLimitReply
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found") || strings.Contains(msg, "no such model"):
		return modelMissingReply
	case strings.Contains(msg, "400") || strings.Contains(msg, "bad request") || strings.Contains(msg, "invalid"):
		return badRequestReply
	default:
		return genericFailureReply
	}
}
