package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistantia/model"
	"assistantia/store"
)

func newHistoryFixture(t *testing.T) (store.Store, *UserService, *ConversationService, *HistoryService) {
	t.Helper()
	st := store.NewMemoryStore()
	users := newTestUserService(st)
	convs := NewConversationService(st)
	return st, users, convs, NewHistoryService(st, convs)
}

func TestHistoryPageRoundTrip(t *testing.T) {
	st, users, convs, history := newHistoryFixture(t)
	owner := mustRegister(t, users, "a@example.com")
	conv := mustCreateConversation(t, convs, owner, "thread")

	seeded := seedMessage(t, st, owner, conv, model.MessageRoleUser, "hello there")

	page, err := history.Page(context.Background(), owner, conv.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	got := page.Items[0]
	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, seeded.UserId, got.UserId)
	assert.Equal(t, seeded.ConversationId, got.ConversationId)
	assert.Equal(t, seeded.Role, got.Role)
	assert.Equal(t, seeded.Content, got.Content)
	assert.Equal(t, seeded.CreatedAt, got.CreatedAt)
}

func TestHistoryPageOrderingAndSlicing(t *testing.T) {
	st, users, convs, history := newHistoryFixture(t)
	owner := mustRegister(t, users, "a@example.com")
	conv := mustCreateConversation(t, convs, owner, "thread")
	for i := 0; i < 5; i++ {
		seedMessage(t, st, owner, conv, model.MessageRoleUser, fmt.Sprintf("m%d", i))
	}

	page, err := history.Page(context.Background(), owner, conv.ID, 2, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "m1", page.Items[0].Content)
	assert.Equal(t, "m2", page.Items[1].Content)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 1, page.Offset)
}

func TestHistoryPageClamping(t *testing.T) {
	st, users, convs, history := newHistoryFixture(t)
	owner := mustRegister(t, users, "a@example.com")
	conv := mustCreateConversation(t, convs, owner, "thread")
	for i := 0; i < 3; i++ {
		seedMessage(t, st, owner, conv, model.MessageRoleUser, fmt.Sprintf("m%d", i))
	}

	t.Run("limit floor", func(t *testing.T) {
		page, err := history.Page(context.Background(), owner, conv.ID, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Limit)
		assert.Len(t, page.Items, 1)
	})

	t.Run("limit ceiling", func(t *testing.T) {
		page, err := history.Page(context.Background(), owner, conv.ID, 10000, 0)
		require.NoError(t, err)
		assert.Equal(t, 200, page.Limit)
		assert.Len(t, page.Items, 3)
	})

	t.Run("negative offset", func(t *testing.T) {
		page, err := history.Page(context.Background(), owner, conv.ID, 50, -7)
		require.NoError(t, err)
		assert.Equal(t, 0, page.Offset)
		assert.Len(t, page.Items, 3)
	})

	t.Run("offset past the end", func(t *testing.T) {
		page, err := history.Page(context.Background(), owner, conv.ID, 50, 99)
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
	})
}

func TestHistoryPageAccess(t *testing.T) {
	_, users, convs, history := newHistoryFixture(t)
	owner := mustRegister(t, users, "a@example.com")
	stranger := mustRegister(t, users, "b@example.com")
	admin := mustRegister(t, users, "root@example.com")
	admin.Role = model.RoleAdmin
	conv := mustCreateConversation(t, convs, owner, "private")

	_, err := history.Page(context.Background(), stranger, conv.ID, 50, 0)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = history.Page(context.Background(), owner, "conv_missing", 50, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = history.Page(context.Background(), admin, conv.ID, 50, 0)
	assert.NoError(t, err)
}

func TestHistoryClearConversation(t *testing.T) {
	st, users, convs, history := newHistoryFixture(t)
	owner := mustRegister(t, users, "a@example.com")
	conv := mustCreateConversation(t, convs, owner, "thread")
	seedMessage(t, st, owner, conv, model.MessageRoleUser, "hi")
	seedMessage(t, st, owner, conv, model.MessageRoleAssistant, "hello")

	deleted, err := history.ClearConversation(context.Background(), owner, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	_, err = convs.Get(context.Background(), owner, conv.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = history.ClearConversation(context.Background(), owner, conv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryClearAll(t *testing.T) {
	st, users, convs, history := newHistoryFixture(t)
	owner := mustRegister(t, users, "a@example.com")
	other := mustRegister(t, users, "b@example.com")

	first := mustCreateConversation(t, convs, owner, "one")
	second := mustCreateConversation(t, convs, owner, "two")
	seedMessage(t, st, owner, first, model.MessageRoleUser, "hi")
	seedMessage(t, st, owner, second, model.MessageRoleUser, "hi")
	seedMessage(t, st, owner, second, model.MessageRoleAssistant, "hello")

	theirs := mustCreateConversation(t, convs, other, "keep")
	seedMessage(t, st, other, theirs, model.MessageRoleUser, "still here")

	deleted, err := history.ClearAll(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted) // 3 messages + 2 conversations

	mine, err := convs.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, mine)

	kept, err := st.ListMessagesByConversation(context.Background(), theirs.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
