package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name                      string         `json:"name" gorm:"not null"`
	Email                     string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash              string         `json:"-" gorm:"not null"`
	EmailVerified             bool           `json:"emailVerified" gorm:"default:false"`
	VerificationCode          *string        `json:"-"`
	VerificationCodeExpiresAt *time.Time     `json:"-"`
	ProfilePhotoURL           *string        `json:"profilePhotoUrl"`
	CreatedAt                 time.Time      `json:"createdAt"`
	UpdatedAt                 time.Time      `json:"updatedAt"`
	DeletedAt                 gorm.DeletedAt `json:"-" gorm:"index"`

	Items []ItemPost `json:"items,omitempty" gorm:"foreignKey:PostedByUserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Auth DTOs
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	ProfilePhotoURL *string `json:"profilePhotoUrl"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
