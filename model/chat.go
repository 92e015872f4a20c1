package model

import (
	"time"
)

// ChatStatus is the support-conversation state. Conversations move
// open -> escalated by explicit escalation; closed ends the thread.
type ChatStatus string

const (
	ChatOpen      ChatStatus = "open"
	ChatEscalated ChatStatus = "escalated"
	ChatClosed    ChatStatus = "closed"
)

// ChatSender tags who authored a chat message.
type ChatSender string

const (
	SenderUser  ChatSender = "user"
	SenderStaff ChatSender = "staff"
	SenderBot   ChatSender = "bot"
)

// ValidChatSender reports whether s is a known sender tag.
func ValidChatSender(s ChatSender) bool {
	switch s {
	case SenderUser, SenderStaff, SenderBot:
		return true
	}
	return false
}

// ChatConversation groups the ordered messages of one support thread.
// PublicID is the opaque token handed to the browser; internal numeric
// IDs are never exposed for conversations since unauthenticated
// visitors can hold them.
type ChatConversation struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	PublicID  string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	UserName  string     `gorm:"type:varchar(255);not null" json:"user_name"`
	UserEmail string     `gorm:"type:varchar(255);not null" json:"user_email"`
	UserID    *uint      `gorm:"index" json:"user_id,omitempty"`
	Status    ChatStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`

	Messages []ChatMessage `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// ChatMessage is one append-only message inside a conversation.
type ChatMessage struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	ConversationID uint       `gorm:"not null;index" json:"conversation_id"`
	SenderType     ChatSender `gorm:"type:varchar(10);not null" json:"sender_type"`
	SenderName     string     `gorm:"type:varchar(255)" json:"sender_name"`
	Message        string     `gorm:"type:text;not null" json:"message"`
}
