package services

import (
	"testing"
	"time"

	"github.com/gitkushall/lostfound-project/internal/apperrors"
	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db)
	owner := newUser(t, db, "Alice")

	item, err := svc.Create(asActor(owner), models.CreateItemRequest{
		Type:         models.ItemTypeLost,
		Title:        "Blue Backpack",
		Category:     "Bags",
		LocationText: "Student Center",
		DateOccurred: "2026-08-20",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusOpen, item.Status)
	assert.Equal(t, models.ItemTypeLost, item.Type)
	assert.Equal(t, owner.ID, item.PostedByUserID)
}

func TestCreateItem_RequiresVerifiedActor(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db)
	owner := newUser(t, db, "Alice")

	_, err := svc.Create(Actor{ID: owner.ID, Verified: false}, models.CreateItemRequest{
		Type:         models.ItemTypeLost,
		Title:        "Backpack",
		Category:     "Bags",
		LocationText: "Gym",
		DateOccurred: "2026-08-20",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
}

func TestCreateItem_RejectsBlankFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db)
	owner := newUser(t, db, "Alice")

	base := models.CreateItemRequest{
		Type:         models.ItemTypeFound,
		Title:        "Wallet",
		Category:     "Accessories",
		LocationText: "Library",
		DateOccurred: "2026-08-20",
	}

	for name, mutate := range map[string]func(*models.CreateItemRequest){
		"title":    func(r *models.CreateItemRequest) { r.Title = "  " },
		"category": func(r *models.CreateItemRequest) { r.Category = "" },
		"location": func(r *models.CreateItemRequest) { r.LocationText = " " },
	} {
		req := base
		mutate(&req)
		_, err := svc.Create(asActor(owner), req)
		require.Error(t, err, name)
		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err), name)
	}
}

func TestUpdateItem_OwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db)
	owner := newUser(t, db, "Alice")
	other := newUser(t, db, "Bob")
	item := newItem(t, db, owner, models.ItemTypeLost, "Backpack")

	_, err := svc.Update(asActor(other), item.ID, models.UpdateItemRequest{
		Title: strptr("Stolen Backpack"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
}

func TestUpdateItem_TypeImmutableStatusOverridable(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db)
	owner := newUser(t, db, "Alice")
	item := newItem(t, db, owner, models.ItemTypeLost, "Backpack")

	status := models.ItemStatusClosed
	updated, err := svc.Update(asActor(owner), item.ID, models.UpdateItemRequest{
		Title:  strptr("Navy Backpack"),
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Navy Backpack", updated.Title)
	assert.Equal(t, models.ItemStatusClosed, updated.Status)
	// There is no way to patch type; it survives every update.
	assert.Equal(t, models.ItemTypeLost, updated.Type)
}

func TestDeleteItem_CascadesOnlyMatchingNotifications(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db)
	notifier := NewNotifier(db, &recordingMailer{})
	owner := newUser(t, db, "Alice")
	other := newUser(t, db, "Bob")
	item := newItem(t, db, owner, models.ItemTypeFound, "Wallet")
	unrelated := newItem(t, db, owner, models.ItemTypeFound, "Keys")

	notifier.Notify(other.ID, models.NotificationClaimRequest, map[string]interface{}{
		"itemId": item.ID.String(), "itemTitle": item.Title,
	})
	notifier.Notify(other.ID, models.NotificationClaimRequest, map[string]interface{}{
		"itemId": unrelated.ID.String(), "itemTitle": unrelated.Title,
	})

	require.NoError(t, svc.Delete(asActor(owner), item.ID))

	notifs := notificationsFor(t, db, other.ID)
	require.Len(t, notifs, 1)
	assert.Contains(t, notifs[0].Data, unrelated.ID.String())

	_, err := svc.Get(item.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestDeleteItem_LeavesClaimsAsOrphans(t *testing.T) {
	db := newTestDB(t)
	itemSvc := NewItemService(db)
	claimSvc := NewClaimService(db, NewNotifier(db, &recordingMailer{}))
	owner := newUser(t, db, "Alice")
	requester := newUser(t, db, "Bob")
	item := newItem(t, db, owner, models.ItemTypeFound, "Wallet")

	claim, err := claimSvc.Submit(asActor(requester), models.CreateClaimRequest{ItemID: item.ID})
	require.NoError(t, err)

	require.NoError(t, itemSvc.Delete(asActor(owner), item.ID))

	var orphan models.ClaimRequest
	require.NoError(t, db.First(&orphan, "id = ?", claim.ID).Error)
	assert.Equal(t, item.ID, orphan.ItemID)
}

func TestListItems_Filters(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db)
	owner := newUser(t, db, "Alice")

	wallet := newItem(t, db, owner, models.ItemTypeFound, "Black Wallet")
	backpack := newItem(t, db, owner, models.ItemTypeLost, "Blue Backpack")
	require.NoError(t, db.Model(&models.ItemPost{}).
		Where("id = ?", backpack.ID).
		Updates(map[string]interface{}{"category": "Bags", "location_text": "North Gym"}).Error)

	found, err := svc.List(models.ItemFilter{Type: models.ItemTypeFound})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, wallet.ID, found[0].ID)

	byCategory, err := svc.List(models.ItemFilter{Category: "Bags"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, backpack.ID, byCategory[0].ID)

	byLocation, err := svc.List(models.ItemFilter{Location: "Gym"})
	require.NoError(t, err)
	require.Len(t, byLocation, 1)

	bySearch, err := svc.List(models.ItemFilter{Search: "Wallet"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, wallet.ID, bySearch[0].ID)

	all, err := svc.List(models.ItemFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListItems_DateRangeAndSort(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemService(db)
	owner := newUser(t, db, "Alice")

	early := newItem(t, db, owner, models.ItemTypeLost, "Old Umbrella")
	late := newItem(t, db, owner, models.ItemTypeLost, "New Umbrella")
	require.NoError(t, db.Model(&models.ItemPost{}).Where("id = ?", early.ID).
		Update("date_occurred", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).Error)
	require.NoError(t, db.Model(&models.ItemPost{}).Where("id = ?", late.ID).
		Update("date_occurred", time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)).Error)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	filtered, err := svc.List(models.ItemFilter{DateFrom: &from})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, late.ID, filtered[0].ID)

	sorted, err := svc.List(models.ItemFilter{Sort: "occurred"})
	require.NoError(t, err)
	require.Len(t, sorted, 2)
	assert.Equal(t, late.ID, sorted[0].ID)
	assert.Equal(t, early.ID, sorted[1].ID)
}
