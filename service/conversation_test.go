package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistantia/model"
	"assistantia/store"
)

func TestCreateConversationDefaultTitle(t *testing.T) {
	st := store.NewMemoryStore()
	users := newTestUserService(st)
	convs := NewConversationService(st)
	owner := mustRegister(t, users, "a@example.com")

	for _, title := range []string{"", "   "} {
		conv := mustCreateConversation(t, convs, owner, title)
		assert.Equal(t, model.DefaultConversationTitle, conv.Title)
		assert.True(t, strings.HasPrefix(conv.ID, "conv_"))
		assert.Equal(t, conv.CreatedAt, conv.UpdatedAt)
	}
}

func TestListConversationsOrderAndVisibility(t *testing.T) {
	st := store.NewMemoryStore()
	users := newTestUserService(st)
	convs := NewConversationService(st)
	owner := mustRegister(t, users, "a@example.com")
	other := mustRegister(t, users, "b@example.com")

	first := mustCreateConversation(t, convs, owner, "first")
	second := mustCreateConversation(t, convs, owner, "second")
	mustCreateConversation(t, convs, other, "not mine")

	listed, err := convs.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	// most recently active first
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)

	// touching the older one moves it to the front
	require.NoError(t, st.UpdateConversation(context.Background(), first.ID, "", model.Now()))
	listed, err = convs.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, first.ID, listed[0].ID)
}

func TestRenameConversation(t *testing.T) {
	st := store.NewMemoryStore()
	users := newTestUserService(st)
	convs := NewConversationService(st)
	owner := mustRegister(t, users, "a@example.com")
	conv := mustCreateConversation(t, convs, owner, "old title")

	renamed, err := convs.Rename(context.Background(), owner, conv.ID, "  new title  ")
	require.NoError(t, err)
	assert.Equal(t, "new title", renamed.Title)
	assert.Greater(t, renamed.UpdatedAt, conv.UpdatedAt)
}

func TestRenameConversationBlankTitle(t *testing.T) {
	st := store.NewMemoryStore()
	users := newTestUserService(st)
	convs := NewConversationService(st)
	owner := mustRegister(t, users, "a@example.com")
	conv := mustCreateConversation(t, convs, owner, "title")

	_, err := convs.Rename(context.Background(), owner, conv.ID, "   ")
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestRenameConversationMissing(t *testing.T) {
	st := store.NewMemoryStore()
	users := newTestUserService(st)
	convs := NewConversationService(st)
	owner := mustRegister(t, users, "a@example.com")

	_, err := convs.Rename(context.Background(), owner, "conv_missing", "title")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConversationOwnershipPolicy(t *testing.T) {
	st := store.NewMemoryStore()
	users := newTestUserService(st)
	convs := NewConversationService(st)
	owner := mustRegister(t, users, "a@example.com")
	stranger := mustRegister(t, users, "b@example.com")
	conv := mustCreateConversation(t, convs, owner, "private")

	_, err := convs.Get(context.Background(), stranger, conv.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// admins bypass the ownership check everywhere
	admin := mustRegister(t, users, "root@example.com")
	admin.Role = model.RoleAdmin
	got, err := convs.Get(context.Background(), admin, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.ID, got.ID)

	_, err = convs.Rename(context.Background(), admin, conv.ID, "renamed by admin")
	assert.NoError(t, err)
}

func TestDeleteConversationCounts(t *testing.T) {
	st := store.NewMemoryStore()
	users := newTestUserService(st)
	convs := NewConversationService(st)
	owner := mustRegister(t, users, "a@example.com")
	conv := mustCreateConversation(t, convs, owner, "thread")
	seedMessage(t, st, owner, conv, model.MessageRoleUser, "one")
	seedMessage(t, st, owner, conv, model.MessageRoleAssistant, "two")

	counts, err := convs.Delete(context.Background(), owner, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.DeletedMessages)
	assert.True(t, counts.DeletedConversation)

	// gone from the owner's listing
	listed, err := convs.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, listed)

	// deleting again is NotFound, not a crash
	_, err = convs.Delete(context.Background(), owner, conv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
