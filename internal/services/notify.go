package services

import (
	"encoding/json"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/gitkushall/lostfound-project/internal/apperrors"
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier is the fan-out side channel: every workflow event writes a
// Notification row for the counterpart, then requests a best-effort email.
// The row is the source of truth; a lost email is acceptable.
type Notifier struct {
	db     *gorm.DB
	mailer Mailer
}

func NewNotifier(db *gorm.DB, mailer Mailer) *Notifier {
	return &Notifier{db: db, mailer: mailer}
}

// Notify records a notification and attempts the email copy. Email failure
// never propagates to the originating workflow action.
func (n *Notifier) Notify(recipientID uuid.UUID, typ string, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notify: marshal payload for %s: %v", typ, err)
		return
	}

	notif := models.Notification{
		UserID: recipientID,
		Type:   typ,
		Data:   string(data),
	}
	if err := n.db.Create(&notif).Error; err != nil {
		log.Printf("notify: create %s notification for %s: %v", typ, recipientID, err)
		return
	}

	var user models.User
	if err := n.db.Select("email").First(&user, "id = ?", recipientID).Error; err != nil {
		return
	}
	if user.Email == "" {
		return
	}

	subject, text := emailContent(typ, payload)
	if err := n.mailer.Send(user.Email, "[Lost & Found] "+subject, text); err != nil {
		log.Printf("notify: send %s email to %s: %v", typ, recipientID, err)
	}
}

func emailContent(typ string, payload map[string]interface{}) (subject, text string) {
	str := func(key string) string {
		s, _ := payload[key].(string)
		return s
	}

	switch typ {
	case models.NotificationClaimRequest:
		return "Someone requested your found item",
			"Someone requested to claim your found item."
	case models.NotificationClaimApproved:
		return "Your claim was approved",
			"Your claim was approved. You can arrange pickup."
	case models.NotificationNewMessage:
		subject = "New message about an item"
		preview := str("messageBody")
		if utf8.RuneCountInString(preview) > 150 {
			preview = truncate(preview, 150) + "…"
		}
		text = "You have a new message about an item."
		if preview != "" {
			text = fmt.Sprintf("%q", preview)
		}
		if sender := str("senderName"); sender != "" {
			text = sender + ": " + text
		}
		return subject, text
	case models.NotificationItemInfo:
		return "Someone reported info about your lost item",
			"Someone reported information about your lost item."
	}
	return "Notification", "You have a new notification."
}

// List returns the actor's notifications, newest first.
func (n *Notifier) List(actor Actor) ([]models.Notification, error) {
	var notifications []models.Notification
	err := n.db.Where("user_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.Internal("failed to fetch notifications", err)
	}
	return notifications, nil
}

// UnreadCount is the poll target for the navigation badge.
func (n *Notifier) UnreadCount(actor Actor) (int64, error) {
	var count int64
	err := n.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", actor.ID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Internal("failed to count notifications", err)
	}
	return count, nil
}

// MarkRead flips a single notification. Scoped to the owner and idempotent:
// marking an absent or already-read notification is not an error.
func (n *Notifier) MarkRead(actor Actor, id uuid.UUID) error {
	err := n.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, actor.ID).
		Update("is_read", true).Error
	if err != nil {
		return apperrors.Internal("failed to mark notification read", err)
	}
	return nil
}

// MarkAllRead flips every notification belonging to the actor.
func (n *Notifier) MarkAllRead(actor Actor) error {
	err := n.db.Model(&models.Notification{}).
		Where("user_id = ?", actor.ID).
		Update("is_read", true).Error
	if err != nil {
		return apperrors.Internal("failed to mark notifications read", err)
	}
	return nil
}
