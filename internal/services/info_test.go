package services

import (
	"testing"

	"github.com/gitkushall/lostfound-project/internal/apperrors"
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportInfo_SeenNotifiesPoster(t *testing.T) {
	db := newTestDB(t)
	svc := NewInfoService(db, NewNotifier(db, &recordingMailer{}))
	poster := newUser(t, db, "Alice")
	helper := newUser(t, db, "Bob")
	item := newItem(t, db, poster, models.ItemTypeLost, "Umbrella")

	update, err := svc.Report(asActor(helper), models.CreateInfoRequest{
		ItemID:  item.ID,
		Type:    models.InfoTypeSeen,
		Message: strptr("spotted one near the cafeteria"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.InfoTypeSeen, update.Type)
	assert.Equal(t, helper.ID, update.UserID)

	// The item stays as it was; tips never move status.
	var reloaded models.ItemPost
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, models.ItemStatusOpen, reloaded.Status)

	notifs := notificationsFor(t, db, poster.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationItemInfo, notifs[0].Type)
	assert.Contains(t, notifs[0].Data, "Bob")
	assert.Contains(t, notifs[0].Data, "spotted one near the cafeteria")
}

func TestReportInfo_ReturnedToDeskWithoutMessage(t *testing.T) {
	db := newTestDB(t)
	svc := NewInfoService(db, NewNotifier(db, &recordingMailer{}))
	poster := newUser(t, db, "Alice")
	helper := newUser(t, db, "Bob")
	item := newItem(t, db, poster, models.ItemTypeLost, "Umbrella")

	update, err := svc.Report(asActor(helper), models.CreateInfoRequest{
		ItemID: item.ID,
		Type:   models.InfoTypeReturnedToDesk,
	})
	require.NoError(t, err)
	assert.Nil(t, update.Message)
}

func TestReportInfo_FoundItemRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewInfoService(db, NewNotifier(db, &recordingMailer{}))
	poster := newUser(t, db, "Alice")
	helper := newUser(t, db, "Bob")
	item := newItem(t, db, poster, models.ItemTypeFound, "Wallet")

	_, err := svc.Report(asActor(helper), models.CreateInfoRequest{
		ItemID: item.ID,
		Type:   models.InfoTypeSeen,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidOperation, apperrors.CodeOf(err))
}

func TestReportInfo_OwnPostRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewInfoService(db, NewNotifier(db, &recordingMailer{}))
	poster := newUser(t, db, "Alice")
	item := newItem(t, db, poster, models.ItemTypeLost, "Umbrella")

	_, err := svc.Report(asActor(poster), models.CreateInfoRequest{
		ItemID: item.ID,
		Type:   models.InfoTypeSeen,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
}

func TestListInfoForItem_Ordered(t *testing.T) {
	db := newTestDB(t)
	svc := NewInfoService(db, NewNotifier(db, &recordingMailer{}))
	poster := newUser(t, db, "Alice")
	helper := newUser(t, db, "Bob")
	item := newItem(t, db, poster, models.ItemTypeLost, "Umbrella")

	_, err := svc.Report(asActor(helper), models.CreateInfoRequest{
		ItemID: item.ID, Type: models.InfoTypeSeen,
	})
	require.NoError(t, err)
	_, err = svc.Report(asActor(helper), models.CreateInfoRequest{
		ItemID: item.ID, Type: models.InfoTypeReturnedToDesk,
	})
	require.NoError(t, err)

	updates, err := svc.ListForItem(item.ID)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, models.InfoTypeSeen, updates[0].Type)
	assert.Equal(t, models.InfoTypeReturnedToDesk, updates[1].Type)
}
