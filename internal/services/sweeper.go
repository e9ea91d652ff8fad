package services

import (
	"log"
	"time"

	"github.com/gitkushall/lostfound-project/internal/apperrors"
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRetention is how long an item may sit without claim or message
// activity before the sweeper removes it.
const DefaultRetention = 30 * 24 * time.Hour

// Sweeper deletes stale items and their referencing notifications. It is
// invoked by an external scheduler and holds no locks beyond the per-item
// transactional delete; a delete racing a fresh claim is accepted.
type Sweeper struct {
	db        *gorm.DB
	retention time.Duration
}

func NewSweeper(db *gorm.DB) *Sweeper {
	return &Sweeper{db: db, retention: DefaultRetention}
}

type SweepResult struct {
	Scanned int `json:"total"`
	Deleted int `json:"deleted"`
}

func (s *Sweeper) Sweep() (SweepResult, error) {
	cutoff := time.Now().Add(-s.retention)

	var ids []uuid.UUID
	err := s.db.Model(&models.ItemPost{}).
		Where("created_at < ?", cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return SweepResult{}, apperrors.Internal("failed to scan items", err)
	}

	result := SweepResult{Scanned: len(ids)}
	for _, id := range ids {
		active, err := s.hasRecentActivity(id, cutoff)
		if err != nil {
			log.Printf("sweeper: activity check for item %s: %v", id, err)
			continue
		}
		if active {
			continue
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			if err := deleteItemNotifications(tx, id); err != nil {
				return err
			}
			return tx.Where("id = ?", id).Delete(&models.ItemPost{}).Error
		})
		if err != nil {
			log.Printf("sweeper: delete item %s: %v", id, err)
			continue
		}
		result.Deleted++
	}
	return result, nil
}

// hasRecentActivity reports whether the item received a claim or a
// conversation message inside the retention window.
func (s *Sweeper) hasRecentActivity(itemID uuid.UUID, cutoff time.Time) (bool, error) {
	var claims int64
	err := s.db.Model(&models.ClaimRequest{}).
		Where("item_id = ? AND created_at >= ?", itemID, cutoff).
		Count(&claims).Error
	if err != nil {
		return false, err
	}
	if claims > 0 {
		return true, nil
	}

	var messages int64
	err = s.db.Model(&models.Message{}).
		Where("created_at >= ?", cutoff).
		Where("conversation_id IN (?)",
			s.db.Model(&models.Conversation{}).Select("id").Where("item_id = ?", itemID)).
		Count(&messages).Error
	if err != nil {
		return false, err
	}
	return messages > 0, nil
}
