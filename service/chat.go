package service

import (
	"context"
	"fmt"
	"strings"

	"assistantia/model"
	"assistantia/store"
)

// SystemPrompt is prepended to every context window sent to the provider.
const SystemPrompt = "You are a helpful and concise assistant."

// ChatService runs the chat turn: resolve or create the conversation, persist
// the user turn, assemble the bounded context window, call the gateway,
// persist the reply, touch the conversation. Sequential, no internal
// concurrency; a gateway failure after the user turn leaves the conversation
// and that turn in place on purpose.
type ChatService struct {
	store         store.Store
	conversations *ConversationService
	gateway       Completer
	window        int
}

func NewChatService(st store.Store, conversations *ConversationService, gateway Completer, window int) *ChatService {
	return &ChatService{
		store:         st,
		conversations: conversations,
		gateway:       gateway,
		window:        window,
	}
}

// ChatResult is the externally visible outcome of one turn.
type ChatResult struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversation_id"`
}

func (s *ChatService) Chat(ctx context.Context, actor *model.User, message string, conversationID string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrUnprocessable
	}

	// 1. resolve or create the conversation
	var conv *model.Conversation
	var err error
	if conversationID != "" {
		conv, err = s.conversations.Get(ctx, actor, conversationID)
		if err != nil {
			return nil, err
		}
	} else {
		conv, err = s.conversations.Create(ctx, actor, "")
		if err != nil {
			return nil, err
		}
	}

	// 2. persist the user turn
	userTurn := &model.Message{
		ID:             model.NewMessageID(),
		UserId:         actor.ID,
		ConversationId: conv.ID,
		Role:           model.MessageRoleUser,
		Content:        message,
		CreatedAt:      model.Now(),
	}
	if err := s.store.CreateMessage(ctx, userTurn); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	// 3. assemble the context window over the whole thread, not just the
	// caller's rows, so an admin-driven turn still sees the owner's messages
	history, err := s.store.ListMessagesByConversation(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	window := assembleWindow(history, s.window)

	// 4. call the gateway; no retry, no partial assistant message on failure
	answer, err := s.gateway.Complete(ctx, window)
	if err != nil {
		return nil, err
	}

	// 5. persist the assistant turn
	assistantTurn := &model.Message{
		ID:             model.NewMessageID(),
		UserId:         actor.ID,
		ConversationId: conv.ID,
		Role:           model.MessageRoleAssistant,
		Content:        answer,
		CreatedAt:      model.Now(),
	}
	if err := s.store.CreateMessage(ctx, assistantTurn); err != nil {
		return nil, fmt.Errorf("save assistant message: %w", err)
	}

	// 6. touch the conversation
	if err := s.store.UpdateConversation(ctx, conv.ID, "", assistantTurn.CreatedAt); err != nil {
		return nil, fmt.Errorf("update conversation: %w", err)
	}

	return &ChatResult{Answer: answer, ConversationID: conv.ID}, nil
}

// assembleWindow selects what the provider sees. history arrives ascending and
// already contains the just-persisted user turn as its final element. With
// window size n the result is the system instruction, the last n entries
// preceding the new turn, then the new turn itself. n <= 0 means no memory at
// all: only the system instruction goes out.
func assembleWindow(history []model.Message, n int) []ChatMessage {
	out := []ChatMessage{{Role: model.MessageRoleSystem, Content: SystemPrompt}}
	if n <= 0 || len(history) == 0 {
		return out
	}

	prior := history[:len(history)-1]
	if len(prior) > n {
		prior = prior[len(prior)-n:]
	}
	for _, item := range prior {
		out = append(out, ChatMessage{Role: item.Role, Content: item.Content})
	}
	last := history[len(history)-1]
	return append(out, ChatMessage{Role: last.Role, Content: last.Content})
}
