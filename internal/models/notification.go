package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types.
const (
	NotificationClaimRequest  = "CLAIM_REQUEST"
	NotificationClaimApproved = "CLAIM_APPROVED"
	NotificationNewMessage    = "NEW_MESSAGE"
	NotificationItemInfo      = "ITEM_INFO"
)

type Notification struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Type      string         `json:"type" gorm:"not null"`
	Data      string         `json:"data" gorm:"type:text"` // JSON payload: item id, actor names, preview
	IsRead    bool           `json:"isRead" gorm:"default:false"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
