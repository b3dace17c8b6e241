package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(store *SqliteService) *ChatService {
	db := store.Db()
	return &ChatService{
		db:           store,
		achSvc:       &AchievementService{},
		userRepo:     repositories.NewUserRepository(db),
		progressRepo: repositories.NewProgressRepository(db),
		convRepo:     repositories.NewConversationRepository(db),
	}
}

func seedConversation(t *testing.T, store *SqliteService, userID string, messages []model.ChatMessage) *model.Conversation {
	t.Helper()

	encoded, err := json.Marshal(messages)
	require.NoError(t, err)

	conversation, err := repositories.NewConversationRepository(store.Db()).CreateConversation(&model.Conversation{
		UserID:   userID,
		Messages: encoded,
	})
	require.NoError(t, err)
	return conversation
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short", 30))
	assert.Equal(t, "How do I improve my PPC campai...", snippet("How do I improve my PPC campaigns for yoga mats?", 30))
	assert.Equal(t, "", snippet("", 30))
}

func TestGetConversations_BuildsPreviews(t *testing.T) {
	store := newTestStore(t)
	svc := newChatService(store)

	now := time.Now()
	seedConversation(t, store, "user-1", []model.ChatMessage{
		{Role: shared.MessageRoleUser, Content: "How do I rank for long-tail keywords on Amazon?", Timestamp: now},
		{Role: shared.MessageRoleAssistant, Content: "Target phrases with 3+ words and lower competition.", Timestamp: now},
	})

	items, err := svc.GetConversations("user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "How do I rank for long-tail ke...", items[0].Title)
	assert.Equal(t, "Target phrases with 3+ words and lower competition.", items[0].Preview)
	assert.Equal(t, 2, items[0].MessageCount)
}

func TestGetConversations_EmptyThreadUsesPlaceholder(t *testing.T) {
	store := newTestStore(t)
	svc := newChatService(store)

	seedConversation(t, store, "user-1", []model.ChatMessage{})

	items, err := svc.GetConversations("user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "New Conversation", items[0].Title)
	assert.Equal(t, "New Conversation", items[0].Preview)
	assert.Equal(t, 0, items[0].MessageCount)
}

func TestGetHistory_ReturnsMessages(t *testing.T) {
	store := newTestStore(t)
	svc := newChatService(store)

	now := time.Now()
	conversation := seedConversation(t, store, "user-1", []model.ChatMessage{
		{Role: shared.MessageRoleUser, Content: "hello", Timestamp: now},
		{Role: shared.MessageRoleAssistant, Content: "hi", References: []string{shared.DatasetTypePi}, Timestamp: now},
	})

	resp, err := svc.GetHistory("user-1", conversation.ID)
	require.NoError(t, err)

	assert.Equal(t, conversation.ID, resp.ID)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, shared.MessageRoleUser, resp.Messages[0].Role)
	assert.Equal(t, []string{shared.DatasetTypePi}, resp.Messages[1].References)
}

func TestGetHistory_OwnershipEnforced(t *testing.T) {
	store := newTestStore(t)
	svc := newChatService(store)

	conversation := seedConversation(t, store, "user-1", []model.ChatMessage{})

	_, err := svc.GetHistory("user-2", conversation.ID)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.StatusCode)
	assert.Equal(t, "Not authorized", appErr.Message)
}

func TestGetHistory_UnknownConversation(t *testing.T) {
	store := newTestStore(t)
	svc := newChatService(store)

	_, err := svc.GetHistory("user-1", "missing")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, "Conversation not found", appErr.Message)
}

func TestDeleteConversation(t *testing.T) {
	store := newTestStore(t)
	svc := newChatService(store)

	conversation := seedConversation(t, store, "user-1", []model.ChatMessage{})

	require.NoError(t, svc.DeleteConversation("user-1", conversation.ID))

	_, err := svc.GetHistory("user-1", conversation.ID)
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestDeleteConversation_OwnershipEnforced(t *testing.T) {
	store := newTestStore(t)
	svc := newChatService(store)

	conversation := seedConversation(t, store, "user-1", []model.ChatMessage{})

	err := svc.DeleteConversation("user-2", conversation.ID)
	require.Error(t, err)

	// The thread survives the rejected delete.
	_, err = svc.GetHistory("user-1", conversation.ID)
	assert.NoError(t, err)
}
