package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"assistantia/model"
	"assistantia/store"
)

func mxAlways(context.Context, string) bool { return true }

// stubGateway records what the orchestration sends and answers with a canned
// reply or a canned error.
type stubGateway struct {
	answer string
	err    error
	sent   [][]ChatMessage
}

func (g *stubGateway) Complete(_ context.Context, messages []ChatMessage) (string, error) {
	copied := make([]ChatMessage, len(messages))
	copy(copied, messages)
	g.sent = append(g.sent, copied)
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func newTestUserService(st store.Store) *UserService {
	tokens, _ := NewTokenService("test-secret", "HS256", 15)
	return NewUserService(st, tokens, mxAlways)
}

func mustRegister(t *testing.T, users *UserService, email string) *model.User {
	t.Helper()
	user, err := users.Register(context.Background(), email, "secret1")
	require.NoError(t, err)
	return user
}

func mustCreateConversation(t *testing.T, convs *ConversationService, owner *model.User, title string) *model.Conversation {
	t.Helper()
	conv, err := convs.Create(context.Background(), owner, title)
	require.NoError(t, err)
	return conv
}

func seedMessage(t *testing.T, st store.Store, owner *model.User, conv *model.Conversation, role, content string) *model.Message {
	t.Helper()
	msg := &model.Message{
		ID:             model.NewMessageID(),
		UserId:         owner.ID,
		ConversationId: conv.ID,
		Role:           role,
		Content:        content,
		CreatedAt:      model.Now(),
	}
	require.NoError(t, st.CreateMessage(context.Background(), msg))
	return msg
}
