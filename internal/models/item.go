package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item types. Immutable after creation.
const (
	ItemTypeLost  = "LOST"
	ItemTypeFound = "FOUND"
)

// Item statuses.
const (
	ItemStatusOpen     = "OPEN"
	ItemStatusPending  = "PENDING"
	ItemStatusReturned = "RETURNED"
	ItemStatusClosed   = "CLOSED"
)

type ItemPost struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Type           string         `json:"type" gorm:"not null"`
	Status         string         `json:"status" gorm:"not null;default:'OPEN'"`
	Title          string         `json:"title" gorm:"not null"`
	Description    *string        `json:"description"`
	Category       string         `json:"category" gorm:"not null"`
	LocationText   string         `json:"locationText" gorm:"not null"`
	DateOccurred   time.Time      `json:"dateOccurred" gorm:"not null"`
	PhotoURL       *string        `json:"photoUrl"`
	PostedByUserID uuid.UUID      `json:"postedByUserId" gorm:"type:uuid;index;not null"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	PostedBy User           `json:"postedBy,omitempty" gorm:"foreignKey:PostedByUserID"`
	Claims   []ClaimRequest `json:"claimRequests,omitempty" gorm:"foreignKey:ItemID"`
}

func (i *ItemPost) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Item DTOs
type CreateItemRequest struct {
	Type         string  `json:"type" validate:"required,oneof=LOST FOUND"`
	Title        string  `json:"title" validate:"required"`
	Description  *string `json:"description"`
	Category     string  `json:"category" validate:"required"`
	LocationText string  `json:"locationText" validate:"required"`
	DateOccurred string  `json:"dateOccurred" validate:"required"`
	PhotoURL     *string `json:"photoUrl"`
}

type UpdateItemRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	LocationText *string `json:"locationText"`
	DateOccurred *string `json:"dateOccurred"`
	PhotoURL     *string `json:"photoUrl"`
	Status       *string `json:"status" validate:"omitempty,oneof=OPEN PENDING RETURNED CLOSED"`
}

// ItemFilter narrows and orders item listings.
type ItemFilter struct {
	Type     string
	Category string
	Status   string
	Location string
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Sort     string // "newest" (default) or "occurred"
}
