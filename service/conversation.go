package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"assistantia/model"
	"assistantia/store"
)

type ConversationService struct {
	store store.Store
}

func NewConversationService(st store.Store) *ConversationService {
	return &ConversationService{store: st}
}

// canAccess is the single ownership rule: the owner, or any admin.
func canAccess(actor *model.User, conv *model.Conversation) bool {
	return actor.ID == conv.UserId || actor.IsAdmin()
}

// Create starts an empty conversation. A missing or blank title falls back to
// the default.
func (s *ConversationService) Create(ctx context.Context, owner *model.User, title string) (*model.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = model.DefaultConversationTitle
	}
	now := model.Now()
	conv := &model.Conversation{
		ID:        model.NewConversationID(),
		UserId:    owner.ID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// List returns the owner's conversations, most recently active first.
func (s *ConversationService) List(ctx context.Context, owner *model.User) ([]model.Conversation, error) {
	convs, err := s.store.ListConversationsByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	if convs == nil {
		convs = []model.Conversation{}
	}
	return convs, nil
}

// Get resolves a conversation and enforces the ownership rule.
func (s *ConversationService) Get(ctx context.Context, actor *model.User, id string) (*model.Conversation, error) {
	conv, err := s.store.GetConversation(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	if !canAccess(actor, conv) {
		return nil, ErrForbidden
	}
	return conv, nil
}

// Rename updates the title and refreshes updated_at.
func (s *ConversationService) Rename(ctx context.Context, actor *model.User, id string, title string) (*model.Conversation, error) {
	conv, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrUnprocessable
	}
	now := model.Now()
	if err := s.store.UpdateConversation(ctx, conv.ID, title, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rename conversation: %w", err)
	}
	conv.Title = title
	conv.UpdatedAt = now
	return conv, nil
}

// DeleteCounts reports the outcome of a conversation delete.
type DeleteCounts struct {
	DeletedMessages     int64 `json:"deleted_messages"`
	DeletedConversation bool  `json:"deleted_conversation"`
}

// Delete removes the conversation's messages and then the conversation.
func (s *ConversationService) Delete(ctx context.Context, actor *model.User, id string) (*DeleteCounts, error) {
	conv, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	messages, err := s.store.DeleteMessagesByConversation(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("delete messages: %w", err)
	}
	removed, err := s.store.DeleteConversation(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("delete conversation: %w", err)
	}
	return &DeleteCounts{
		DeletedMessages:     messages,
		DeletedConversation: removed > 0,
	}, nil
}
