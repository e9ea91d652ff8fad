package services

import (
	"encoding/json"
	"errors"

	"github.com/gitkushall/lostfound-project/internal/apperrors"
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClaimService runs the claim-approval protocol for FOUND items.
// Per claim: PENDING → {APPROVED, DENIED}, both terminal.
type ClaimService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewClaimService(db *gorm.DB, notifier *Notifier) *ClaimService {
	return &ClaimService{db: db, notifier: notifier}
}

func (s *ClaimService) Submit(actor Actor, req models.CreateClaimRequest) (*models.ClaimRequest, error) {
	if !actor.Verified {
		return nil, apperrors.Forbidden("verify your email before claiming items")
	}

	var item models.ItemPost
	if err := s.db.First(&item, "id = ?", req.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("item not found")
		}
		return nil, apperrors.Internal("failed to fetch item", err)
	}
	if item.Type != models.ItemTypeFound {
		return nil, apperrors.InvalidOperation("claims are only for FOUND items")
	}
	if item.PostedByUserID == actor.ID {
		return nil, apperrors.Forbidden("you cannot claim your own post")
	}
	if item.Status != models.ItemStatusOpen && item.Status != models.ItemStatusPending {
		return nil, apperrors.InvalidState("this item is no longer available for claims")
	}

	var existing models.ClaimRequest
	err := s.db.Where("item_id = ? AND requester_user_id = ? AND status = ?",
		req.ItemID, actor.ID, models.ClaimStatusPending).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("you already have a pending claim for this item")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to check existing claims", err)
	}

	claim := models.ClaimRequest{
		ItemID:          req.ItemID,
		RequesterUserID: actor.ID,
		Status:          models.ClaimStatusPending,
		Message:         req.Message,
	}
	if len(req.VerificationAnswers) > 0 {
		answers, err := json.Marshal(req.VerificationAnswers)
		if err != nil {
			return nil, apperrors.Validation("invalid verification answers")
		}
		str := string(answers)
		claim.VerificationAnswers = &str
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&claim).Error; err != nil {
			return err
		}
		return tx.Model(&models.ItemPost{}).
			Where("id = ?", item.ID).
			Update("status", models.ItemStatusPending).Error
	})
	if err != nil {
		return nil, apperrors.Internal("failed to create claim", err)
	}

	if err := s.db.Preload("Item").Preload("Requester").First(&claim, "id = ?", claim.ID).Error; err != nil {
		return nil, apperrors.Internal("failed to reload claim", err)
	}

	s.notifier.Notify(item.PostedByUserID, models.NotificationClaimRequest, map[string]interface{}{
		"claimId":       claim.ID.String(),
		"itemId":        item.ID.String(),
		"itemTitle":     item.Title,
		"requesterName": claim.Requester.Name,
	})

	return &claim, nil
}

// Resolve approves or denies a pending claim. Resolution is single-fire: the
// status flip is a conditional update, so of two concurrent resolvers exactly
// one wins and the loser observes InvalidState.
func (s *ClaimService) Resolve(actor Actor, claimID uuid.UUID, decision string) (*models.ClaimRequest, error) {
	if decision != models.ClaimStatusApproved && decision != models.ClaimStatusDenied {
		return nil, apperrors.Validation("decision must be APPROVED or DENIED")
	}

	var claim models.ClaimRequest
	if err := s.db.Preload("Item").First(&claim, "id = ?", claimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("claim not found")
		}
		return nil, apperrors.Internal("failed to fetch claim", err)
	}
	if claim.Item.PostedByUserID != actor.ID {
		return nil, apperrors.Forbidden("only the poster can approve or deny claims")
	}

	itemStatus := models.ItemStatusOpen
	if decision == models.ClaimStatusApproved {
		itemStatus = models.ItemStatusReturned
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ClaimRequest{}).
			Where("id = ? AND status = ?", claimID, models.ClaimStatusPending).
			Update("status", decision)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.InvalidState("this claim has already been processed")
		}
		return tx.Model(&models.ItemPost{}).
			Where("id = ?", claim.ItemID).
			Update("status", itemStatus).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.Internal("failed to resolve claim", err)
	}

	// Approval is announced; denial is intentionally silent.
	if decision == models.ClaimStatusApproved {
		s.notifier.Notify(claim.RequesterUserID, models.NotificationClaimApproved, map[string]interface{}{
			"claimId":   claim.ID.String(),
			"itemId":    claim.ItemID.String(),
			"itemTitle": claim.Item.Title,
		})
	}

	var updated models.ClaimRequest
	if err := s.db.Preload("Item").Preload("Requester").First(&updated, "id = ?", claimID).Error; err != nil {
		return nil, apperrors.Internal("failed to reload claim", err)
	}
	return &updated, nil
}
