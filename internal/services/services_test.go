package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gitkushall/lostfound-project/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database per test. The
// shared-cache DSN keeps all pooled connections on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ItemPost{},
		&models.ClaimRequest{},
		&models.ItemInfoUpdate{},
		&models.Conversation{},
		&models.Message{},
		&models.MessageReaction{},
		&models.Notification{},
	))
	return db
}

type sentMail struct {
	To      string
	Subject string
	Text    string
}

// recordingMailer captures outgoing mail; Err simulates transport failure.
type recordingMailer struct {
	mu   sync.Mutex
	Sent []sentMail
	Err  error
}

func (m *recordingMailer) Send(to, subject, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, sentMail{To: to, Subject: subject, Text: text})
	return nil
}

func newUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{
		Name:          name,
		Email:         strings.ToLower(name) + "@example.com",
		PasswordHash:  "x",
		EmailVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func asActor(u models.User) Actor {
	return Actor{ID: u.ID, Verified: u.EmailVerified}
}

func newItem(t *testing.T, db *gorm.DB, owner models.User, typ, title string) models.ItemPost {
	t.Helper()
	item := models.ItemPost{
		Type:           typ,
		Status:         models.ItemStatusOpen,
		Title:          title,
		Category:       "Accessories",
		LocationText:   "Library",
		DateOccurred:   time.Now().Add(-24 * time.Hour),
		PostedByUserID: owner.ID,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uuid.UUID) []models.Notification {
	t.Helper()
	var list []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Order("created_at ASC").Find(&list).Error)
	return list
}

func strptr(s string) *string { return &s }
