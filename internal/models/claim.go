package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claim statuses. PENDING is the only non-terminal state.
const (
	ClaimStatusPending  = "PENDING"
	ClaimStatusApproved = "APPROVED"
	ClaimStatusDenied   = "DENIED"
)

type ClaimRequest struct {
	ID                  uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ItemID              uuid.UUID      `json:"itemId" gorm:"type:uuid;index;not null"`
	RequesterUserID     uuid.UUID      `json:"requesterUserId" gorm:"type:uuid;index;not null"`
	Status              string         `json:"status" gorm:"not null;default:'PENDING'"`
	Message             *string        `json:"message"`
	VerificationAnswers *string        `json:"verificationAnswers"` // JSON string
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`

	Item      ItemPost `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Requester User     `json:"requester,omitempty" gorm:"foreignKey:RequesterUserID"`
}

func (cr *ClaimRequest) BeforeCreate(tx *gorm.DB) error {
	if cr.ID == uuid.Nil {
		cr.ID = uuid.New()
	}
	return nil
}

// Claim DTOs
type CreateClaimRequest struct {
	ItemID              uuid.UUID         `json:"itemId" validate:"required"`
	Message             *string           `json:"message"`
	VerificationAnswers map[string]string `json:"verificationAnswers"`
}

type ResolveClaimRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED DENIED"`
}
