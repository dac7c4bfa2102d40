package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"assistantia/model"
	"assistantia/store"
)

// MXLookup reports whether the mail domain publishes at least one MX record.
// Injected so tests do not hit DNS.
type MXLookup func(ctx context.Context, domain string) bool

// ResolveMX is the production lookup.
func ResolveMX(ctx context.Context, domain string) bool {
	records, err := net.DefaultResolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}

type UserService struct {
	store    store.Store
	tokens   *TokenService
	lookupMX MXLookup
}

func NewUserService(st store.Store, tokens *TokenService, lookupMX MXLookup) *UserService {
	if lookupMX == nil {
		lookupMX = ResolveMX
	}
	return &UserService{store: st, tokens: tokens, lookupMX: lookupMX}
}

// NormalizeEmail trims whitespace and lowercases; the unique key is computed
// over this form everywhere (registration and login alike).
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. The email domain must have a mail-exchange
// record; a duplicate normalized email is a conflict.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return nil, ErrInvalidEmail
	}
	if !s.lookupMX(ctx, email[at+1:]) {
		return nil, ErrInvalidEmail
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           model.NewUserID(),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleUser,
		CreatedAt:    model.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			// lost the check-then-insert race; same outcome for the caller
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns a signed access token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	token, err := s.tokens.CreateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}
	return token, nil
}

// GetByID re-reads the persisted user. The auth middleware calls this on every
// request so a deleted user loses access immediately, valid token or not.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.store.ListUsers(ctx)
}

// DeleteResult reports how much the cascade removed.
type DeleteResult struct {
	DeletedUser          int64  `json:"deleted_user"`
	DeletedConversations int64  `json:"deleted_conversations"`
	DeletedMessages      int64  `json:"deleted_messages"`
	UserID               string `json:"user_id"`
}

// DeleteAccount removes a user together with all owned conversations and
// messages. Messages first, then conversations, then the user; a crash in
// between leaves partial state, which the store model accepts.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) (*DeleteResult, error) {
	messages, err := s.store.DeleteMessagesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("delete messages: %w", err)
	}
	conversations, err := s.store.DeleteConversationsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("delete conversations: %w", err)
	}
	removed, err := s.store.DeleteUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	if removed == 0 {
		return nil, ErrNotFound
	}
	return &DeleteResult{
		DeletedUser:          removed,
		DeletedConversations: conversations,
		DeletedMessages:      messages,
		UserID:               userID,
	}, nil
}

// AdminDeleteUser is the admin-only variant with an existence check up front.
func (s *UserService) AdminDeleteUser(ctx context.Context, targetID string) (*DeleteResult, error) {
	if _, err := s.store.GetUserByID(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get target user: %w", err)
	}
	return s.DeleteAccount(ctx, targetID)
}
