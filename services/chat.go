package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/sellerpath/lms_api/dto"
	"github.com/sellerpath/lms_api/model"
	"github.com/sellerpath/lms_api/services/repositories"
	"github.com/sellerpath/lms_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// chatHistoryWindow caps how many prior messages are replayed to the model.
const chatHistoryWindow = 20

// ChatService manages assistant conversations and the retrieval-backed
// message flow.
type ChatService struct {
	context.DefaultService

	db     DbService
	aiSvc  *AIService
	achSvc *AchievementService

	userRepo     *repositories.UserRepository
	progressRepo *repositories.ProgressRepository
	convRepo     *repositories.ConversationRepository
}

const CHAT_SVC = "chat_svc"

func (svc ChatService) Id() string {
	return CHAT_SVC
}

func (svc *ChatService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChatService) Start() error {
	svc.aiSvc = svc.Service(AI_SVC).(*AIService)
	svc.achSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)

	if s, ok := svc.Service(SQLITE_SVC).(*SqliteService); ok && s != nil {
		svc.db = s
	} else {
		svc.db = svc.Service(POSTGRES_SVC).(*PostgresService)
	}
	db := svc.db.Db()
	svc.userRepo = repositories.NewUserRepository(db)
	svc.progressRepo = repositories.NewProgressRepository(db)
	svc.convRepo = repositories.NewConversationRepository(db)
	return nil
}

// ==================== MESSAGING ====================

// SendMessage appends the user's message, calls the assistant with the
// retrieved data context and the last messages of the thread, and persists
// the reply. The user message is saved before the AI call so it survives a
// provider failure; a rate-limited provider degrades to a canned reply.
func (svc *ChatService) SendMessage(userID string, req dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if !svc.aiSvc.Configured() {
		return nil, shared.NewInternalError(nil, "AI service not configured (Missing API Key)")
	}

	conversation, err := svc.getOrCreateConversation(userID, req.ConversationID)
	if err != nil {
		return nil, err
	}

	messages, err := decodeMessages(conversation)
	if err != nil {
		return nil, err
	}

	messages = append(messages, model.ChatMessage{
		Role:      shared.MessageRoleUser,
		Content:   req.Message,
		Timestamp: time.Now(),
	})
	if err := svc.saveMessages(conversation, messages); err != nil {
		return nil, err
	}

	if err := svc.userRepo.IncrementQuestionsAsked(userID); err != nil {
		log.WithError(err).Warn("Failed to increment questions asked")
	}

	ragCtx := svc.aiSvc.RelevantContext(req.Message)

	history := messages[:len(messages)-1]
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}

	reply, err := svc.aiSvc.Chat(req.Message, history, ragCtx)
	references := ragCtx.References()
	if err != nil {
		if !shared.IsRateLimited(err) {
			return nil, err
		}
		log.Warn("AI rate limit hit, using mock response")
		reply = svc.aiSvc.MockChatResponse()
		references = nil
	}

	now := time.Now()
	messages = append(messages, model.ChatMessage{
		Role:       shared.MessageRoleAssistant,
		Content:    reply,
		References: references,
		Timestamp:  now,
	})
	if err := svc.saveMessages(conversation, messages); err != nil {
		return nil, err
	}

	if _, err := evaluateAndAward(svc.achSvc, svc.userRepo, svc.progressRepo,
		userID, shared.ActivityChat, ActivityData{}, now); err != nil {
		log.WithError(err).Warn("Achievement check failed after chat message")
	}

	return &dto.SendMessageResponse{
		ConversationID: conversation.ID,
		Reply:          reply,
		References:     references,
		Timestamp:      now,
	}, nil
}

func (svc *ChatService) getOrCreateConversation(userID, conversationID string) (*model.Conversation, error) {
	if conversationID == "" {
		conversation, err := svc.convRepo.CreateConversation(&model.Conversation{
			UserID:   userID,
			Messages: json.RawMessage("[]"),
		})
		if err != nil {
			return nil, svc.db.HandleError(err)
		}
		return conversation, nil
	}
	return svc.ownedConversation(userID, conversationID)
}

func (svc *ChatService) ownedConversation(userID, conversationID string) (*model.Conversation, error) {
	conversation, err := svc.convRepo.GetConversation(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Conversation not found")
		}
		return nil, svc.db.HandleError(err)
	}
	if conversation.UserID != userID {
		return nil, shared.NewUnauthorizedError(nil, "Not authorized")
	}
	return conversation, nil
}

func decodeMessages(conversation *model.Conversation) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	if len(conversation.Messages) > 0 {
		if err := json.Unmarshal(conversation.Messages, &messages); err != nil {
			return nil, shared.NewInternalError(err, "Conversation is unreadable")
		}
	}
	return messages, nil
}

func (svc *ChatService) saveMessages(conversation *model.Conversation, messages []model.ChatMessage) error {
	encoded, err := json.Marshal(messages)
	if err != nil {
		return shared.NewInternalError(err, "Failed to encode conversation")
	}
	conversation.Messages = encoded

	if conversation.Title == "" && len(messages) > 0 {
		conversation.Title = snippet(messages[0].Content, 30)
	}

	if err := svc.convRepo.UpdateConversation(conversation); err != nil {
		return svc.db.HandleError(err)
	}
	return nil
}

// ==================== CONVERSATION MANAGEMENT ====================

func (svc *ChatService) GetConversations(userID string) ([]dto.ConversationListItem, error) {
	conversations, err := svc.convRepo.GetUserConversations(userID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	items := make([]dto.ConversationListItem, 0, len(conversations))
	for _, c := range conversations {
		item := dto.ConversationListItem{
			ID:        c.ID,
			Title:     "New Conversation",
			Preview:   "New Conversation",
			UpdatedAt: c.UpdatedAt,
		}

		var messages []model.ChatMessage
		if err := json.Unmarshal(c.Messages, &messages); err == nil && len(messages) > 0 {
			item.Title = snippet(messages[0].Content, 30)
			item.Preview = snippet(messages[len(messages)-1].Content, 50)
			item.MessageCount = len(messages)
		}
		items = append(items, item)
	}
	return items, nil
}

func (svc *ChatService) GetHistory(userID, conversationID string) (*dto.ConversationHistoryResponse, error) {
	conversation, err := svc.ownedConversation(userID, conversationID)
	if err != nil {
		return nil, err
	}

	messages, err := decodeMessages(conversation)
	if err != nil {
		return nil, err
	}

	resp := &dto.ConversationHistoryResponse{
		ID:       conversation.ID,
		Title:    conversation.Title,
		Messages: make([]dto.ChatMessageView, 0, len(messages)),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, dto.ChatMessageView{
			Role:       m.Role,
			Content:    m.Content,
			References: m.References,
			Timestamp:  m.Timestamp,
		})
	}
	return resp, nil
}

func (svc *ChatService) DeleteConversation(userID, conversationID string) error {
	conversation, err := svc.ownedConversation(userID, conversationID)
	if err != nil {
		return err
	}
	if err := svc.convRepo.DeleteConversation(conversation.ID); err != nil {
		return svc.db.HandleError(err)
	}
	return nil
}

func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
