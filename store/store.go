package store

import (
	"context"
	"errors"

	"assistantia/model"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when the users email unique key is violated.
var ErrDuplicateEmail = errors.New("email already registered")

// Store defines persistence operations for users, conversations, and messages.
// Implementations treat each call as independently atomic; multi-call sequences
// are not transactional.
type Store interface {
	// users
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id string) (int64, error)
	CountUsersSince(ctx context.Context, since string) (int64, error)

	// conversations
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)
	ListConversationsByOwner(ctx context.Context, userID string) ([]model.Conversation, error)
	UpdateConversation(ctx context.Context, id string, title string, updatedAt string) error
	DeleteConversation(ctx context.Context, id string) (int64, error)
	DeleteConversationsByOwner(ctx context.Context, userID string) (int64, error)
	CountConversationsSince(ctx context.Context, since string) (int64, error)

	// messages
	CreateMessage(ctx context.Context, msg *model.Message) error
	ListMessagesByConversation(ctx context.Context, conversationID string) ([]model.Message, error)
	DeleteMessagesByConversation(ctx context.Context, conversationID string) (int64, error)
	DeleteMessagesByOwner(ctx context.Context, userID string) (int64, error)
	DeleteOrphanMessages(ctx context.Context) (int64, error)
	CountMessagesSince(ctx context.Context, since string) (int64, error)
}
