package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/mailer"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testFixture testlerde tekrar eden bağlantı + organizatör ikilisi.
type testFixture struct {
	db        *gorm.DB
	organizer *models.User
}

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventForm{},
		&models.EventQuestion{},
		&models.FormSubmission{},
		&models.Ticket{},
		&models.Review{},
		&models.SentEmail{},
	)
	require.NoError(t, err)
	return db
}

// fakeTransport gönderimleri kaydeder; "@" içermeyen ve failFor ile
// işaretlenen adresler için başarısızlık döner.
type fakeTransport struct {
	mu      sync.Mutex
	sent    []mailer.Message
	failFor map[string]bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{failFor: map[string]bool{}}
}

func (f *fakeTransport) Send(msg mailer.Message) mailer.SendResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[msg.To] {
		return mailer.SendResult{Success: false, Error: "smtp: gönderim reddedildi"}
	}
	f.sent = append(f.sent, msg)
	return mailer.SendResult{Success: true, MessageID: "test-message"}
}

func (f *fakeTransport) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeTransport) lastMessage() mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return mailer.Message{}
	}
	return f.sent[len(f.sent)-1]
}

func createOrganizer(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Organizatör",
		Email:        "organizer@etkinlik.link",
		PasswordHash: "x",
		Role:         models.RolePlanner,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func organizerCaller(user *models.User) Caller {
	return Caller{UserID: user.ID, Role: user.Role, Email: user.Email}
}

// createEventWithForm yayınlanmış tek formu ve istenen sorularıyla etkinlik
// kurar. questions haritası alan anahtarı -> zorunlu mu bilgisidir.
func createEventWithForm(t *testing.T, db *gorm.DB, organizerID uint, formType models.FormType, status models.FormStatus, questions map[string]bool) *models.Event {
	t.Helper()
	event := &models.Event{
		OrganizerID: organizerID,
		Key:         "test-key-" + string(formType) + time.Now().Format("150405.000000000"),
		Title:       "Go Konferansı",
		StartsAt:    time.Now().Add(48 * time.Hour),
		Capacity:    100,
		IsEnabled:   true,
	}
	require.NoError(t, db.Create(event).Error)

	form := &models.EventForm{
		EventID:  event.ID,
		FormType: formType,
		Status:   status,
	}
	require.NoError(t, db.Create(form).Error)

	order := 0
	for fieldKey, required := range questions {
		q := &models.EventQuestion{
			EventFormID: form.ID,
			FieldKey:    fieldKey,
			Label:       fieldKey,
			InputType:   "text",
			IsRequired:  required,
			SortOrder:   order,
		}
		require.NoError(t, db.Create(q).Error)
		order++
	}
	return event
}

func createSubmission(t *testing.T, db *gorm.DB, eventID uint, formType models.FormType, status models.SubmissionStatus, name, email string) *models.FormSubmission {
	t.Helper()
	sub := &models.FormSubmission{
		EventID:  eventID,
		FormType: formType,
		Name:     name,
		Email:    email,
		Status:   status,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func testContext() context.Context {
	return context.Background()
}
