package services

import (
	"testing"

	"etkinlik.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicketFixture(t *testing.T) (ITicketService, *fakeTransport, *testFixture) {
	db := newTestDB(t)
	transport := newFakeTransport()
	notifier := NewNotificationDispatcherWithDeps(db, transport)
	organizer := createOrganizer(t, db)
	return NewTicketServiceWithDB(db, notifier), transport, &testFixture{db: db, organizer: organizer}
}

func TestIssueTicketOncePerUser(t *testing.T) {
	service, transport, fx := newTicketFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)

	holder := SubmitterIdentity{Name: "Ali", Email: "ali@ornek.com"}
	caller := Caller{UserID: 42, Role: models.RoleUser, Email: "ali@ornek.com"}

	ticket, err := service.IssueTicket(testContext(), event.ID, holder, caller)
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.Code)
	assert.Equal(t, caller.UserID, ticket.UserID)

	// Bilet bildirimi gönderilir.
	require.Equal(t, 1, transport.sentCount())
	assert.Contains(t, transport.lastMessage().Subject, "Biletiniz hazır")

	// Aynı kullanıcı ikinci bilet alamaz.
	_, err = service.IssueTicket(testContext(), event.ID, holder, caller)
	assert.ErrorIs(t, err, ErrTicketExists)

	// Anonim bilet alamaz.
	_, err = service.IssueTicket(testContext(), event.ID, holder, Caller{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestIssueTicketFallsBackToCallerEmail(t *testing.T) {
	service, _, fx := newTicketFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)

	caller := Caller{UserID: 7, Role: models.RoleUser, Email: "oturum@ornek.com"}
	ticket, err := service.IssueTicket(testContext(), event.ID, SubmitterIdentity{Name: "X"}, caller)
	require.NoError(t, err)
	assert.Equal(t, "oturum@ornek.com", ticket.HolderEmail)
}

func TestGetTicketByCode(t *testing.T) {
	service, _, fx := newTicketFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)

	caller := Caller{UserID: 9, Role: models.RoleUser, Email: "d@ornek.com"}
	issued, err := service.IssueTicket(testContext(), event.ID, SubmitterIdentity{Name: "Deniz", Email: "d@ornek.com"}, caller)
	require.NoError(t, err)

	found, err := service.GetTicketByCode(testContext(), issued.Code)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, found.ID)

	_, err = service.GetTicketByCode(testContext(), "gecersiz-kod")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}
