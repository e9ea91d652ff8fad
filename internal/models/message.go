package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is immutable once created. ReplyToMessageID is a weak reference:
// it may dangle to null if the target ever disappears.
type Message struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ConversationID   uuid.UUID  `json:"conversationId" gorm:"type:uuid;index;not null"`
	SenderID         uuid.UUID  `json:"senderId" gorm:"type:uuid;not null"`
	Body             string     `json:"body" gorm:"type:text;not null;default:''"`
	ImageURL         *string    `json:"imageUrl"`
	ReplyToMessageID *uuid.UUID `json:"replyToMessageId" gorm:"type:uuid"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	Sender    User              `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Reactions []MessageReaction `json:"reactions,omitempty" gorm:"foreignKey:MessageID"`
	ReplyTo   *Message          `json:"-" gorm:"foreignKey:ReplyToMessageID"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type SendMessageRequest struct {
	Body             string     `json:"body" validate:"max=2000"`
	ImageURL         *string    `json:"imageUrl" validate:"omitempty,url"`
	ReplyToMessageID *uuid.UUID `json:"replyToMessageId"`
}

// ReplyPreview is the shallow view of a reply target returned with each
// message: id, truncated body (or an image marker) and the sender's name.
type ReplyPreview struct {
	ID         uuid.UUID `json:"id"`
	Body       string    `json:"body"`
	SenderName string    `json:"senderName"`
}

type MessageResponse struct {
	Message
	ReplyTo *ReplyPreview `json:"replyTo,omitempty"`
}
