package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Info report types against LOST items.
const (
	InfoTypeSeen           = "SEEN"
	InfoTypeReturnedToDesk = "RETURNED_TO_DESK"
)

// ItemInfoUpdate is an additive tip against a LOST item. It carries no
// status and is never resolved.
type ItemInfoUpdate struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID      `json:"itemId" gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;not null"`
	Type      string         `json:"type" gorm:"not null"`
	Message   *string        `json:"message"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (u *ItemInfoUpdate) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type CreateInfoRequest struct {
	ItemID  uuid.UUID `json:"itemId" validate:"required"`
	Type    string    `json:"type" validate:"required,oneof=SEEN RETURNED_TO_DESK"`
	Message *string   `json:"message"`
}
