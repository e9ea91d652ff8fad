package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageReaction is unique per (message, user, emoji). Removal is a hard
// delete so the unique index never blocks a later re-add.
type MessageReaction struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	MessageID uuid.UUID `json:"messageId" gorm:"type:uuid;not null;uniqueIndex:idx_message_user_emoji"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_message_user_emoji"`
	Emoji     string    `json:"emoji" gorm:"size:16;not null;uniqueIndex:idx_message_user_emoji"`
	CreatedAt time.Time `json:"createdAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (r *MessageReaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type ReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,min=1,max=16"`
}
