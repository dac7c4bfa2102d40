package store

import (
	"context"
	"sort"
	"sync"

	"assistantia/model"
)

// MemoryStore keeps all three collections in-process. It exists for tests and
// for running without a database; it honors the same contract as GormStore.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]model.User
	emails        map[string]string // normalized email -> user id
	conversations map[string]model.Conversation
	messages      map[string]model.Message
	userOrder     []string
	messageOrder  []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]model.User),
		emails:        make(map[string]string),
		conversations: make(map[string]model.Conversation),
		messages:      make(map[string]model.Message),
	}
}

func (m *MemoryStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.emails[user.Email]; taken {
		return ErrDuplicateEmail
	}
	m.users[user.ID] = *user
	m.emails[user.Email] = user.ID
	m.userOrder = append(m.userOrder, user.ID)
	return nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.emails[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := m.users[id]
	return &user, nil
}

func (m *MemoryStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]model.User, 0, len(m.userOrder))
	for _, id := range m.userOrder {
		if u, ok := m.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *MemoryStore) DeleteUser(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return 0, nil
	}
	delete(m.users, id)
	delete(m.emails, user.Email)
	return 1, nil
}

func (m *MemoryStore) CountUsersSince(_ context.Context, since string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, u := range m.users {
		if u.CreatedAt >= since {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) CreateConversation(_ context.Context, conv *model.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations[conv.ID] = *conv
	return nil
}

func (m *MemoryStore) GetConversation(_ context.Context, id string) (*model.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conv, ok := m.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &conv, nil
}

func (m *MemoryStore) ListConversationsByOwner(_ context.Context, userID string) ([]model.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var convs []model.Conversation
	for _, c := range m.conversations {
		if c.UserId == userID {
			convs = append(convs, c)
		}
	}
	sort.SliceStable(convs, func(i, j int) bool {
		if convs[i].UpdatedAt != convs[j].UpdatedAt {
			return convs[i].UpdatedAt > convs[j].UpdatedAt
		}
		return convs[i].ID < convs[j].ID
	})
	return convs, nil
}

func (m *MemoryStore) UpdateConversation(_ context.Context, id string, title string, updatedAt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.conversations[id]
	if !ok {
		return ErrNotFound
	}
	if title != "" {
		conv.Title = title
	}
	conv.UpdatedAt = updatedAt
	m.conversations[id] = conv
	return nil
}

func (m *MemoryStore) DeleteConversation(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.conversations[id]; !ok {
		return 0, nil
	}
	delete(m.conversations, id)
	return 1, nil
}

func (m *MemoryStore) DeleteConversationsByOwner(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, c := range m.conversations {
		if c.UserId == userID {
			delete(m.conversations, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) CountConversationsSince(_ context.Context, since string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, c := range m.conversations {
		if c.CreatedAt >= since {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) CreateMessage(_ context.Context, msg *model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.ID] = *msg
	m.messageOrder = append(m.messageOrder, msg.ID)
	return nil
}

func (m *MemoryStore) ListMessagesByConversation(_ context.Context, conversationID string) ([]model.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var msgs []model.Message
	for _, id := range m.messageOrder {
		if msg, ok := m.messages[id]; ok && msg.ConversationId == conversationID {
			msgs = append(msgs, msg)
		}
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt < msgs[j].CreatedAt
	})
	return msgs, nil
}

func (m *MemoryStore) DeleteMessagesByConversation(_ context.Context, conversationID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, msg := range m.messages {
		if msg.ConversationId == conversationID {
			delete(m.messages, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) DeleteMessagesByOwner(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, msg := range m.messages {
		if msg.UserId == userID {
			delete(m.messages, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) DeleteOrphanMessages(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, msg := range m.messages {
		if _, ok := m.conversations[msg.ConversationId]; !ok {
			delete(m.messages, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) CountMessagesSince(_ context.Context, since string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, msg := range m.messages {
		if msg.CreatedAt >= since {
			count++
		}
	}
	return count, nil
}
