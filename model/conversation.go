package model

import (
	"encoding/json"
	"time"
)

// Conversation stores a chat thread with the assistant
type Conversation struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	UserID    string          `json:"user_id" gorm:"index;not null"`
	Title     string          `json:"title"`
	Messages  json.RawMessage `json:"messages" gorm:"type:text"` // JSON array of ChatMessage
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ChatMessage is one entry of Conversation.Messages
type ChatMessage struct {
	Role       string    `json:"role"` // user, assistant
	Content    string    `json:"content"`
	References []string  `json:"references,omitempty"` // dataset types backing the answer
	Timestamp  time.Time `json:"timestamp"`
}
