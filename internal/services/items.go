package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gitkushall/lostfound-project/internal/apperrors"
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemService owns the ItemPost lifecycle: OPEN → PENDING → {RETURNED, OPEN},
// OPEN/PENDING → CLOSED, any state → deleted by the owner.
type ItemService struct {
	db *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

func (s *ItemService) Create(actor Actor, req models.CreateItemRequest) (*models.ItemPost, error) {
	if !actor.Verified {
		return nil, apperrors.Forbidden("verify your email before posting items")
	}
	if req.Type != models.ItemTypeLost && req.Type != models.ItemTypeFound {
		return nil, apperrors.Validation("type must be LOST or FOUND")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.Validation("title is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, apperrors.Validation("category is required")
	}
	if strings.TrimSpace(req.LocationText) == "" {
		return nil, apperrors.Validation("location is required")
	}
	occurred, err := parseDate(req.DateOccurred)
	if err != nil {
		return nil, apperrors.Validation("dateOccurred must be a valid date")
	}

	item := models.ItemPost{
		Type:           req.Type,
		Status:         models.ItemStatusOpen,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Category:       strings.TrimSpace(req.Category),
		LocationText:   strings.TrimSpace(req.LocationText),
		DateOccurred:   occurred,
		PhotoURL:       req.PhotoURL,
		PostedByUserID: actor.ID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, apperrors.Internal("failed to create item", err)
	}

	s.db.Preload("PostedBy").First(&item, "id = ?", item.ID)
	return &item, nil
}

// Update applies a partial patch. Type is immutable; status may be set
// directly by the owner as a manual override.
func (s *ItemService) Update(actor Actor, id uuid.UUID, req models.UpdateItemRequest) (*models.ItemPost, error) {
	var item models.ItemPost
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("item not found")
		}
		return nil, apperrors.Internal("failed to fetch item", err)
	}
	if item.PostedByUserID != actor.ID {
		return nil, apperrors.Forbidden("only the poster can edit this item")
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperrors.Validation("title cannot be empty")
		}
		item.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Category != nil {
		if strings.TrimSpace(*req.Category) == "" {
			return nil, apperrors.Validation("category cannot be empty")
		}
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.LocationText != nil {
		if strings.TrimSpace(*req.LocationText) == "" {
			return nil, apperrors.Validation("location cannot be empty")
		}
		item.LocationText = strings.TrimSpace(*req.LocationText)
	}
	if req.DateOccurred != nil {
		occurred, err := parseDate(*req.DateOccurred)
		if err != nil {
			return nil, apperrors.Validation("dateOccurred must be a valid date")
		}
		item.DateOccurred = occurred
	}
	if req.PhotoURL != nil {
		item.PhotoURL = req.PhotoURL
	}
	if req.Status != nil {
		switch *req.Status {
		case models.ItemStatusOpen, models.ItemStatusPending, models.ItemStatusReturned, models.ItemStatusClosed:
			item.Status = *req.Status
		default:
			return nil, apperrors.Validation("invalid status")
		}
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, apperrors.Internal("failed to update item", err)
	}
	s.db.Preload("PostedBy").First(&item, "id = ?", item.ID)
	return &item, nil
}

// Delete removes the item and every notification whose payload references
// it. Claims, info updates and messages are left behind as historical
// orphans.
func (s *ItemService) Delete(actor Actor, id uuid.UUID) error {
	var item models.ItemPost
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("item not found")
		}
		return apperrors.Internal("failed to fetch item", err)
	}
	if item.PostedByUserID != actor.ID {
		return apperrors.Forbidden("only the poster can delete this item")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteItemNotifications(tx, id); err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return apperrors.Internal("failed to delete item", err)
	}
	return nil
}

func (s *ItemService) Get(id uuid.UUID) (*models.ItemPost, error) {
	var item models.ItemPost
	err := s.db.Preload("PostedBy").
		Preload("Claims.Requester").
		First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("item not found")
		}
		return nil, apperrors.Internal("failed to fetch item", err)
	}
	return &item, nil
}

func (s *ItemService) List(filter models.ItemFilter) ([]models.ItemPost, error) {
	q := s.db.Model(&models.ItemPost{}).Preload("PostedBy")

	if filter.Type == models.ItemTypeLost || filter.Type == models.ItemTypeFound {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		q = q.Where("location_text LIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR category LIKE ?", like, like, like)
	}
	if filter.DateFrom != nil {
		q = q.Where("date_occurred >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date_occurred <= ?", *filter.DateTo)
	}

	if filter.Sort == "occurred" {
		q = q.Order("date_occurred DESC")
	} else {
		q = q.Order("created_at DESC")
	}

	var items []models.ItemPost
	if err := q.Find(&items).Error; err != nil {
		return nil, apperrors.Internal("failed to fetch items", err)
	}
	return items, nil
}

func (s *ItemService) ListMine(actor Actor) ([]models.ItemPost, error) {
	var items []models.ItemPost
	err := s.db.Where("posted_by_user_id = ?", actor.ID).
		Preload("PostedBy").
		Preload("Claims.Requester").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Internal("failed to fetch items", err)
	}
	return items, nil
}

// deleteItemNotifications removes every notification whose JSON payload
// references the given item id. Shared with the retention sweeper.
func deleteItemNotifications(tx *gorm.DB, itemID uuid.UUID) error {
	pattern := fmt.Sprintf(`%%"itemId":"%s"%%`, itemID)
	return tx.Where("data LIKE ?", pattern).Delete(&models.Notification{}).Error
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
