package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/relately/backend/internal/model/chat"
)

type fakeModel struct {
	reply string
	err   error
	calls [][]*schema.Message
}

func (m *fakeModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.calls = append(m.calls, input)
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.reply, nil), nil
}

func (m *fakeModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (m *fakeModel) BindTools(_ []*schema.ToolInfo) error {
	return nil
}

func newTestClient(primary, fallback *fakeModel) *Client {
	c := &Client{primary: primary, historyLimit: 20}
	if fallback != nil {
		c.fallback = fallback
	}
	return c
}

func history(contents ...string) []chat.Message {
	msgs := make([]chat.Message, 0, len(contents))
	for i, content := range contents {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		msgs = append(msgs, chat.Message{ID: content, Role: role, Content: content})
	}
	return msgs
}

func TestGetChatResponsePrimaryTier(t *testing.T) {
	primary := &fakeModel{reply: "have you told her how that makes you feel?"}
	fallback := &fakeModel{reply: "fallback"}
	client := newTestClient(primary, fallback)

	got, err := client.GetChatResponse(context.Background(), history("we argue a lot"))
	if err != nil {
		t.Fatalf("GetChatResponse err: %v", err)
	}
	if got != primary.reply {
		t.Fatalf("got %q, want primary reply", got)
	}
	if len(fallback.calls) != 0 {
		t.Fatal("fallback tier must not be called when primary succeeds")
	}

	// System persona goes first, then the history.
	input := primary.calls[0]
	if len(input) != 2 || input[0].Role != schema.System {
		t.Fatalf("unexpected model input: %+v", input)
	}
}

func TestGetChatResponseFallbackTier(t *testing.T) {
	primary := &fakeModel{err: errors.New("upstream timeout")}
	fallback := &fakeModel{reply: "it sounds like trust is the real issue here"}
	client := newTestClient(primary, fallback)

	got, err := client.GetChatResponse(context.Background(), history("he lied again"))
	if err != nil {
		t.Fatalf("GetChatResponse err: %v", err)
	}
	if got != fallback.reply {
		t.Fatalf("got %q, want fallback reply", got)
	}
	if len(fallback.calls) != 1 {
		t.Fatalf("fallback should be tried exactly once, got %d calls", len(fallback.calls))
	}

	// Both tiers must see the identical prompt.
	if len(primary.calls[0]) != len(fallback.calls[0]) {
		t.Fatal("fallback input differs from primary input")
	}
}

func TestGetChatResponseDegradesToCannedReply(t *testing.T) {
	primary := &fakeModel{err: errors.New("status 429: too many requests")}
	fallback := &fakeModel{err: errors.New("status 429: too many requests")}
	client := newTestClient(primary, fallback)

	got, err := client.GetChatResponse(context.Background(), history("hello"))
	if err != nil {
		t.Fatalf("model failures must not surface as errors, got %v", err)
	}
	if got != rateLimitReply {
		t.Fatalf("got %q, want rate limit reply", got)
	}
}

func TestGetChatResponseEmptyContent(t *testing.T) {
	primary := &fakeModel{reply: "   "}
	client := newTestClient(primary, nil)

	got, err := client.GetChatResponse(context.Background(), history("hello"))
	if err != nil {
		t.Fatalf("GetChatResponse err: %v", err)
	}
	if got != emptyReply {
		t.Fatalf("blank model output should map to the empty reply, got %q", got)
	}
}

func TestGetChatResponseContextCancellation(t *testing.T) {
	primary := &fakeModel{err: errors.New("canceled")}
	client := newTestClient(primary, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.GetChatResponse(ctx, history("hello")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildMessagesWindowsHistory(t *testing.T) {
	client := newTestClient(&fakeModel{reply: "ok"}, nil)
	client.historyLimit = 4

	long := history("a", "b", "c", "d", "e", "f", "g", "h")
	messages := client.buildMessages(long)

	// Persona prompt plus the trailing window.
	if len(messages) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(messages))
	}
	if messages[1].Content != "e" || messages[4].Content != "h" {
		t.Fatalf("window picked wrong slice: %v ... %v", messages[1].Content, messages[4].Content)
	}
}

func TestErrorReply(t *testing.T) {
	cases := []struct {
		err  string
		want string
	}{
		{"401 Unauthorized", authErrorReply},
		{"invalid api key", authErrorReply},
		{"429 rate limit exceeded", rateLimitReply},
		{"model not found", modelMissingReply},
		{"400 bad request", badRequestReply},
		{"connection reset by peer", genericFailureReply},
	}

	for _, tc := range cases {
		if got := errorReply(errors.New(tc.err)); got != tc.want {
			t.Fatalf("errorReply(%q) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
