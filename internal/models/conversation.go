package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is the single chat thread between two users about one item.
// User1ID is always the lexicographically smaller of the pair so that the
// composite unique index yields exactly one row per unordered pair per item.
// No soft delete: rows must stay unique and are never removed in scope.
type Conversation struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `json:"itemId" gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair"`
	User1ID   uuid.UUID `json:"user1Id" gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair"`
	User2ID   uuid.UUID `json:"user2Id" gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Item  ItemPost `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	User1 User     `json:"user1,omitempty" gorm:"foreignKey:User1ID"`
	User2 User     `json:"user2,omitempty" gorm:"foreignKey:User2ID"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Participant reports whether userID is one of the two conversation members.
func (c *Conversation) Participant(userID uuid.UUID) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// Other returns the counterpart of userID in the conversation.
func (c *Conversation) Other(userID uuid.UUID) uuid.UUID {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

type OpenConversationRequest struct {
	ItemID uuid.UUID `json:"itemId" validate:"required"`
}
