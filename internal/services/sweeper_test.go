package services

import (
	"testing"
	"time"

	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func backdate(t *testing.T, db *gorm.DB, model interface{}, id interface{}, age time.Duration) {
	t.Helper()
	err := db.Model(model).Where("id = ?", id).
		UpdateColumn("created_at", time.Now().Add(-age)).Error
	require.NoError(t, err)
}

func TestSweep_DeletesStaleItemAndItsNotifications(t *testing.T) {
	db := newTestDB(t)
	poster := newUser(t, db, "Alice")
	stale := newItem(t, db, poster, models.ItemTypeFound, "Wallet")
	fresh := newItem(t, db, poster, models.ItemTypeFound, "Keys")
	backdate(t, db, &models.ItemPost{}, stale.ID, 45*24*time.Hour)

	notifier := NewNotifier(db, &recordingMailer{})
	notifier.Notify(poster.ID, models.NotificationClaimRequest, map[string]interface{}{
		"itemId": stale.ID.String(), "itemTitle": "Wallet", "requesterName": "Bob",
	})
	notifier.Notify(poster.ID, models.NotificationClaimRequest, map[string]interface{}{
		"itemId": fresh.ID.String(), "itemTitle": "Keys", "requesterName": "Bob",
	})

	result, err := NewSweeper(db).Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Deleted)

	var count int64
	db.Model(&models.ItemPost{}).Where("id = ?", stale.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.ItemPost{}).Where("id = ?", fresh.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// Only the stale item's notifications go with it.
	notifs := notificationsFor(t, db, poster.ID)
	require.Len(t, notifs, 1)
	assert.Contains(t, notifs[0].Data, fresh.ID.String())
}

func TestSweep_RecentClaimKeepsItem(t *testing.T) {
	db := newTestDB(t)
	poster := newUser(t, db, "Alice")
	requester := newUser(t, db, "Bob")
	item := newItem(t, db, poster, models.ItemTypeFound, "Wallet")
	backdate(t, db, &models.ItemPost{}, item.ID, 45*24*time.Hour)

	claims := NewClaimService(db, NewNotifier(db, &recordingMailer{}))
	_, err := claims.Submit(asActor(requester), models.CreateClaimRequest{
		ItemID:  item.ID,
		Message: strptr("that wallet is mine"),
	})
	require.NoError(t, err)

	result, err := NewSweeper(db).Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 0, result.Deleted)

	var count int64
	db.Model(&models.ItemPost{}).Where("id = ?", item.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSweep_RecentMessageKeepsItem(t *testing.T) {
	db := newTestDB(t)
	poster := newUser(t, db, "Alice")
	visitor := newUser(t, db, "Bob")
	item := newItem(t, db, poster, models.ItemTypeFound, "Wallet")
	backdate(t, db, &models.ItemPost{}, item.ID, 45*24*time.Hour)

	convs := NewConversationService(db, NewNotifier(db, &recordingMailer{}))
	conv, err := convs.GetOrCreate(asActor(visitor), item.ID)
	require.NoError(t, err)
	_, err = convs.Send(asActor(visitor), conv.ID, models.SendMessageRequest{Body: "still around?"})
	require.NoError(t, err)

	result, err := NewSweeper(db).Sweep()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Deleted)
}

func TestSweep_StaleClaimDoesNotKeepItem(t *testing.T) {
	db := newTestDB(t)
	poster := newUser(t, db, "Alice")
	requester := newUser(t, db, "Bob")
	item := newItem(t, db, poster, models.ItemTypeFound, "Wallet")

	claims := NewClaimService(db, NewNotifier(db, &recordingMailer{}))
	claim, err := claims.Submit(asActor(requester), models.CreateClaimRequest{
		ItemID:  item.ID,
		Message: strptr("that wallet is mine"),
	})
	require.NoError(t, err)

	backdate(t, db, &models.ItemPost{}, item.ID, 45*24*time.Hour)
	backdate(t, db, &models.ClaimRequest{}, claim.ID, 40*24*time.Hour)

	result, err := NewSweeper(db).Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
}

func TestSweep_FreshItemUntouched(t *testing.T) {
	db := newTestDB(t)
	poster := newUser(t, db, "Alice")
	newItem(t, db, poster, models.ItemTypeFound, "Wallet")

	result, err := NewSweeper(db).Sweep()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Scanned)
	assert.Equal(t, 0, result.Deleted)
}
