package service

import (
	"context"
	"fmt"

	"assistantia/model"
	"assistantia/store"
)

type HistoryService struct {
	store         store.Store
	conversations *ConversationService
}

func NewHistoryService(st store.Store, conversations *ConversationService) *HistoryService {
	return &HistoryService{store: st, conversations: conversations}
}

// HistoryPage is one slice of a conversation's messages in chronological order.
type HistoryPage struct {
	Items  []model.Message `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// Page returns messages for one conversation. Limit is clamped to [1,200],
// offset to >= 0.
func (s *HistoryService) Page(ctx context.Context, actor *model.User, conversationID string, limit, offset int) (*HistoryPage, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	conv, err := s.conversations.Get(ctx, actor, conversationID)
	if err != nil {
		return nil, err
	}

	all, err := s.store.ListMessagesByConversation(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	items := []model.Message{}
	if offset < len(all) {
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		items = all[offset:end]
	}
	return &HistoryPage{Items: items, Limit: limit, Offset: offset}, nil
}

// ClearConversation removes one conversation together with its messages and
// returns the combined count.
func (s *HistoryService) ClearConversation(ctx context.Context, actor *model.User, conversationID string) (int64, error) {
	counts, err := s.conversations.Delete(ctx, actor, conversationID)
	if err != nil {
		return 0, err
	}
	deleted := counts.DeletedMessages
	if counts.DeletedConversation {
		deleted++
	}
	return deleted, nil
}

// ClearAll wipes every conversation and message the caller owns.
func (s *HistoryService) ClearAll(ctx context.Context, actor *model.User) (int64, error) {
	messages, err := s.store.DeleteMessagesByOwner(ctx, actor.ID)
	if err != nil {
		return 0, fmt.Errorf("delete messages: %w", err)
	}
	conversations, err := s.store.DeleteConversationsByOwner(ctx, actor.ID)
	if err != nil {
		return 0, fmt.Errorf("delete conversations: %w", err)
	}
	return messages + conversations, nil
}
