package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gitkushall/lostfound-project/internal/apperrors"
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxMessageLen    = 2000
	notifyPreviewLen = 200
	replyPreviewLen  = 80
	imagePlaceholder = "[Image]"
	replyImageMarker = "[image]"
)

// ConversationService manages the single canonical chat thread per
// (item, user-pair), its ordered message history and reactions.
type ConversationService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewConversationService(db *gorm.DB, notifier *Notifier) *ConversationService {
	return &ConversationService{db: db, notifier: notifier}
}

// truncate shortens s to at most n runes, never splitting a multi-byte
// sequence.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// canonicalPair orders two user ids so the smaller uuid is always user1.
func canonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}

// GetOrCreate resolves the counterpart from the item's poster and performs
// an atomic find-or-create on the canonical pair. Concurrent first-message
// attempts converge on one row: the unique index rejects the duplicate
// insert and the loser re-fetches.
func (s *ConversationService) GetOrCreate(actor Actor, itemID uuid.UUID) (*models.Conversation, error) {
	var item models.ItemPost
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("item not found")
		}
		return nil, apperrors.Internal("failed to fetch item", err)
	}
	if item.PostedByUserID == actor.ID {
		return nil, apperrors.InvalidOperation("you cannot start a conversation with yourself")
	}

	user1, user2 := canonicalPair(actor.ID, item.PostedByUserID)

	conv, err := s.findConversation(itemID, user1, user2)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to fetch conversation", err)
	}

	created := models.Conversation{ItemID: itemID, User1ID: user1, User2ID: user2}
	if err := s.db.Create(&created).Error; err != nil {
		// Lost the race: the unique index guarantees the winner's row exists.
		conv, ferr := s.findConversation(itemID, user1, user2)
		if ferr != nil {
			return nil, apperrors.Internal("failed to create conversation", err)
		}
		return conv, nil
	}
	return s.findConversation(itemID, user1, user2)
}

func (s *ConversationService) findConversation(itemID, user1, user2 uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.db.Preload("Item").Preload("User1").Preload("User2").
		Where("item_id = ? AND user1_id = ? AND user2_id = ?", itemID, user1, user2).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListMine returns every conversation the actor participates in, newest
// first.
func (s *ConversationService) ListMine(actor Actor) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := s.db.Preload("Item").Preload("User1").Preload("User2").
		Where("user1_id = ? OR user2_id = ?", actor.ID, actor.ID).
		Order("created_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, apperrors.Internal("failed to fetch conversations", err)
	}
	return convs, nil
}

// FindForItem returns the actor's conversation about an item, if any.
func (s *ConversationService) FindForItem(actor Actor, itemID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.db.Preload("Item").Preload("User1").Preload("User2").
		Where("item_id = ? AND (user1_id = ? OR user2_id = ?)", itemID, actor.ID, actor.ID).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("conversation not found")
		}
		return nil, apperrors.Internal("failed to fetch conversation", err)
	}
	return &conv, nil
}

// loadForParticipant fetches a conversation and hides its existence from
// non-participants behind NotFound.
func (s *ConversationService) loadForParticipant(actor Actor, convID uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.db.First(&conv, "id = ?", convID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("conversation not found")
		}
		return nil, apperrors.Internal("failed to fetch conversation", err)
	}
	if !conv.Participant(actor.ID) {
		return nil, apperrors.NotFound("conversation not found")
	}
	return &conv, nil
}

// Messages returns the full history in send order, each message carrying its
// reactions and a shallow preview of its reply target.
func (s *ConversationService) Messages(actor Actor, convID uuid.UUID) ([]models.MessageResponse, error) {
	if _, err := s.loadForParticipant(actor, convID); err != nil {
		return nil, err
	}

	var messages []models.Message
	err := s.db.Where("conversation_id = ?", convID).
		Preload("Sender").
		Preload("Reactions.User").
		Preload("ReplyTo.Sender").
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, apperrors.Internal("failed to fetch messages", err)
	}

	responses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, toMessageResponse(&messages[i]))
	}
	return responses, nil
}

func toMessageResponse(m *models.Message) models.MessageResponse {
	resp := models.MessageResponse{Message: *m}
	if m.ReplyTo != nil {
		body := strings.TrimSpace(m.ReplyTo.Body)
		if body == "" && m.ReplyTo.ImageURL != nil {
			body = replyImageMarker
		} else if utf8.RuneCountInString(body) > replyPreviewLen {
			body = truncate(body, replyPreviewLen) + "…"
		}
		resp.ReplyTo = &models.ReplyPreview{
			ID:         m.ReplyTo.ID,
			Body:       body,
			SenderName: m.ReplyTo.Sender.Name,
		}
	}
	return resp
}

// Send appends a message. A replyToMessageId pointing outside the
// conversation is silently dropped rather than failing the send.
func (s *ConversationService) Send(actor Actor, convID uuid.UUID, req models.SendMessageRequest) (*models.MessageResponse, error) {
	if !actor.Verified {
		return nil, apperrors.Forbidden("verify your email before sending messages")
	}

	conv, err := s.loadForParticipant(actor, convID)
	if err != nil {
		return nil, err
	}

	body := strings.TrimSpace(req.Body)
	if len(body) > maxMessageLen {
		return nil, apperrors.Validation("message is too long")
	}
	if body == "" && req.ImageURL == nil {
		return nil, apperrors.Validation("message must have text or an image")
	}

	var replyTo *uuid.UUID
	if req.ReplyToMessageID != nil {
		var target models.Message
		err := s.db.Where("id = ? AND conversation_id = ?", *req.ReplyToMessageID, convID).
			First(&target).Error
		if err == nil {
			replyTo = &target.ID
		}
	}

	message := models.Message{
		ConversationID:   convID,
		SenderID:         actor.ID,
		Body:             body,
		ImageURL:         req.ImageURL,
		ReplyToMessageID: replyTo,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, apperrors.Internal("failed to send message", err)
	}

	err = s.db.Preload("Sender").
		Preload("Reactions.User").
		Preload("ReplyTo.Sender").
		First(&message, "id = ?", message.ID).Error
	if err != nil {
		return nil, apperrors.Internal("failed to reload message", err)
	}

	preview := truncate(body, notifyPreviewLen)
	if preview == "" && req.ImageURL != nil {
		preview = imagePlaceholder
	}

	var item models.ItemPost
	s.db.First(&item, "id = ?", conv.ItemID)

	s.notifier.Notify(conv.Other(actor.ID), models.NotificationNewMessage, map[string]interface{}{
		"conversationId": convID.String(),
		"itemId":         conv.ItemID.String(),
		"itemTitle":      item.Title,
		"senderName":     message.Sender.Name,
		"messageBody":    preview,
	})

	resp := toMessageResponse(&message)
	return &resp, nil
}

// AddReaction is idempotent: a duplicate add returns the existing row.
func (s *ConversationService) AddReaction(actor Actor, convID, messageID uuid.UUID, emoji string) (*models.MessageReaction, error) {
	if _, err := s.loadForParticipant(actor, convID); err != nil {
		return nil, err
	}

	var message models.Message
	err := s.db.Where("id = ? AND conversation_id = ?", messageID, convID).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("message not found")
		}
		return nil, apperrors.Internal("failed to fetch message", err)
	}

	var existing models.MessageReaction
	err = s.db.Preload("User").
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, actor.ID, emoji).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to fetch reaction", err)
	}

	reaction := models.MessageReaction{
		MessageID: messageID,
		UserID:    actor.ID,
		Emoji:     emoji,
	}
	if err := s.db.Create(&reaction).Error; err != nil {
		// Concurrent duplicate add: the unique index kept exactly one row.
		ferr := s.db.Preload("User").
			Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, actor.ID, emoji).
			First(&existing).Error
		if ferr != nil {
			return nil, apperrors.Internal("failed to add reaction", err)
		}
		return &existing, nil
	}

	s.db.Preload("User").First(&reaction, "id = ?", reaction.ID)
	return &reaction, nil
}

// RemoveReaction deletes the actor's matching reaction rows. Idempotent on
// absence.
func (s *ConversationService) RemoveReaction(actor Actor, convID, messageID uuid.UUID, emoji string) error {
	if _, err := s.loadForParticipant(actor, convID); err != nil {
		return err
	}

	err := s.db.Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, actor.ID, emoji).
		Delete(&models.MessageReaction{}).Error
	if err != nil {
		return apperrors.Internal("failed to remove reaction", err)
	}
	return nil
}

// Reactions lists a message's reactions for participants.
func (s *ConversationService) Reactions(actor Actor, convID, messageID uuid.UUID) ([]models.MessageReaction, error) {
	if _, err := s.loadForParticipant(actor, convID); err != nil {
		return nil, err
	}

	var reactions []models.MessageReaction
	err := s.db.Preload("User").Where("message_id = ?", messageID).Find(&reactions).Error
	if err != nil {
		return nil, apperrors.Internal("failed to fetch reactions", err)
	}
	return reactions, nil
}
