package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellerpath/lms_api/model"
	"gorm.io/gorm"
)

// ConversationRepository handles chat thread storage
type ConversationRepository struct {
	BaseRepository
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *ConversationRepository) CreateConversation(conversation *model.Conversation) (*model.Conversation, error) {
	if conversation.ID == "" {
		id, _ := uuid.NewV7()
		conversation.ID = id.String()
	}
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = time.Now()

	if err := r.db.Create(conversation).Error; err != nil {
		return nil, err
	}
	return conversation, nil
}

func (r *ConversationRepository) GetConversation(id string) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.Where("id = ?", id).First(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepository) GetUserConversations(userID string) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&conversations).Error
	return conversations, err
}

func (r *ConversationRepository) UpdateConversation(conversation *model.Conversation) error {
	conversation.UpdatedAt = time.Now()
	return r.db.Save(conversation).Error
}

func (r *ConversationRepository) DeleteConversation(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Conversation{}).Error
}

func (r *ConversationRepository) CountConversations() (int64, error) {
	var count int64
	err := r.db.Model(&model.Conversation{}).Count(&count).Error
	return count, err
}
