package dto

import "time"

// ==================== CHAT DTOs ====================

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" validate:"required,max=4000"`
}

func (s SendMessageRequest) Validate() error {
	return GetValidator().Struct(s)
}

type SendMessageResponse struct {
	ConversationID string    `json:"conversation_id"`
	Reply          string    `json:"reply"`
	References     []string  `json:"references,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

type ConversationListItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Preview      string    `json:"preview"`
	MessageCount int       `json:"message_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ConversationHistoryResponse struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Messages []ChatMessageView `json:"messages"`
}

type ChatMessageView struct {
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	References []string  `json:"references,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
