package services

import (
	"errors"

	"github.com/gitkushall/lostfound-project/internal/apperrors"
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InfoService records tips against LOST items. There is no approval step and
// the item's status is never touched; the poster transitions it manually.
type InfoService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewInfoService(db *gorm.DB, notifier *Notifier) *InfoService {
	return &InfoService{db: db, notifier: notifier}
}

func (s *InfoService) Report(actor Actor, req models.CreateInfoRequest) (*models.ItemInfoUpdate, error) {
	if !actor.Verified {
		return nil, apperrors.Forbidden("verify your email before reporting info")
	}

	var item models.ItemPost
	if err := s.db.First(&item, "id = ?", req.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("item not found")
		}
		return nil, apperrors.Internal("failed to fetch item", err)
	}
	if item.Type != models.ItemTypeLost {
		return nil, apperrors.InvalidOperation("info updates are only for LOST items")
	}
	if item.PostedByUserID == actor.ID {
		return nil, apperrors.Forbidden("you cannot report info on your own post")
	}

	update := models.ItemInfoUpdate{
		ItemID:  req.ItemID,
		UserID:  actor.ID,
		Type:    req.Type,
		Message: req.Message,
	}
	if err := s.db.Create(&update).Error; err != nil {
		return nil, apperrors.Internal("failed to submit info", err)
	}

	s.db.Preload("User").First(&update, "id = ?", update.ID)

	payload := map[string]interface{}{
		"itemId":       item.ID.String(),
		"itemTitle":    item.Title,
		"type":         req.Type,
		"reporterName": update.User.Name,
	}
	if req.Message != nil {
		payload["message"] = *req.Message
	}
	s.notifier.Notify(item.PostedByUserID, models.NotificationItemInfo, payload)

	return &update, nil
}

// ListForItem returns the tip history of an item, oldest first.
func (s *InfoService) ListForItem(itemID uuid.UUID) ([]models.ItemInfoUpdate, error) {
	var updates []models.ItemInfoUpdate
	err := s.db.Where("item_id = ?", itemID).
		Preload("User").
		Order("created_at ASC").
		Find(&updates).Error
	if err != nil {
		return nil, apperrors.Internal("failed to fetch info updates", err)
	}
	return updates, nil
}
