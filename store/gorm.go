package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"assistantia/model"
)

// GormStore persists the three collections in mysql through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

func (s *GormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *GormStore) DeleteUser(ctx context.Context, id string) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete user: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormStore) CountUsersSince(ctx context.Context, since string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (s *GormStore) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	if err := s.db.WithContext(ctx).Create(conv).Error; err != nil {
		return fmt.Errorf("create conversation: %w", err)
	}
	return nil
}

func (s *GormStore) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &conv, nil
}

func (s *GormStore) ListConversationsByOwner(ctx context.Context, userID string) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id ASC").
		Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return convs, nil
}

// UpdateConversation refreshes updated_at and, when title is non-empty,
// replaces the title as well.
func (s *GormStore) UpdateConversation(ctx context.Context, id string, title string, updatedAt string) error {
	updates := map[string]interface{}{"updated_at": updatedAt}
	if title != "" {
		updates["title"] = title
	}
	result := s.db.WithContext(ctx).Model(&model.Conversation{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update conversation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteConversation(ctx context.Context, id string) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Conversation{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete conversation: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormStore) DeleteConversationsByOwner(ctx context.Context, userID string) (int64, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Conversation{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete conversations by owner: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormStore) CountConversationsSince(ctx context.Context, since string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Conversation{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count conversations: %w", err)
	}
	return count, nil
}

func (s *GormStore) CreateMessage(ctx context.Context, msg *model.Message) error {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (s *GormStore) ListMessagesByConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	var msgs []model.Message
	err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

func (s *GormStore) DeleteMessagesByConversation(ctx context.Context, conversationID string) (int64, error) {
	result := s.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Delete(&model.Message{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete messages by conversation: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormStore) DeleteMessagesByOwner(ctx context.Context, userID string) (int64, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Message{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete messages by owner: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteOrphanMessages removes messages whose conversation no longer exists.
// Orphans can be left behind by the non-transactional delete sequences.
func (s *GormStore) DeleteOrphanMessages(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("conversation_id NOT IN (?)", s.db.Model(&model.Conversation{}).Select("id")).
		Delete(&model.Message{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete orphan messages: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *GormStore) CountMessagesSince(ctx context.Context, since string) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Message{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return count, nil
}
