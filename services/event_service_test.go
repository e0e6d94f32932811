package services

import (
	"testing"
	"time"

	"etkinlik.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventFixture(t *testing.T) (IEventService, *testFixture) {
	db := newTestDB(t)
	organizer := createOrganizer(t, db)
	return NewEventServiceWithDB(db), &testFixture{db: db, organizer: organizer}
}

func validEvent() models.Event {
	return models.Event{
		Title:    "Go Meetup",
		StartsAt: time.Now().Add(72 * time.Hour),
		Capacity: 50,
	}
}

func TestCreateEventGeneratesKeyAndDraftForms(t *testing.T) {
	service, fx := newEventFixture(t)

	created, err := service.CreateEvent(testContext(), organizerCaller(fx.organizer), validEvent())
	require.NoError(t, err)
	assert.NotEmpty(t, created.Key)
	assert.Equal(t, fx.organizer.ID, created.OrganizerID)
	require.Len(t, created.Forms, 3)
	for _, form := range created.Forms {
		assert.Equal(t, models.FormStatusDraft, form.Status)
	}
}

func TestCreateEventValidationAndRole(t *testing.T) {
	service, fx := newEventFixture(t)
	caller := organizerCaller(fx.organizer)

	event := validEvent()
	event.Title = ""
	_, err := service.CreateEvent(testContext(), caller, event)
	assert.ErrorIs(t, err, ErrEventTitleRequired)

	event = validEvent()
	event.StartsAt = time.Time{}
	_, err = service.CreateEvent(testContext(), caller, event)
	assert.ErrorIs(t, err, ErrEventTimeRequired)

	event = validEvent()
	past := event.StartsAt.Add(-time.Hour)
	event.EndsAt = &past
	_, err = service.CreateEvent(testContext(), caller, event)
	assert.ErrorIs(t, err, ErrEventInvalidInput)

	// Normal kullanıcı etkinlik açamaz.
	_, err = service.CreateEvent(testContext(), Caller{UserID: 5, Role: models.RoleUser}, validEvent())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.CreateEvent(testContext(), Caller{}, validEvent())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetEventByKeyHidesDisabled(t *testing.T) {
	service, fx := newEventFixture(t)

	created, err := service.CreateEvent(testContext(), organizerCaller(fx.organizer), validEvent())
	require.NoError(t, err)

	found, err := service.GetEventByKey(testContext(), created.Key)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	require.NoError(t, fx.db.Model(&models.Event{}).Where("id = ?", created.ID).Update("is_enabled", false).Error)
	_, err = service.GetEventByKey(testContext(), created.Key)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = service.GetEventByKey(testContext(), "yok-boyle-anahtar")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestSetFormStatusPublishGate(t *testing.T) {
	service, fx := newEventFixture(t)
	caller := organizerCaller(fx.organizer)

	created, err := service.CreateEvent(testContext(), caller, validEvent())
	require.NoError(t, err)

	err = service.SetFormStatus(testContext(), created.ID, models.FormTypeAttendee, models.FormStatusPublished, caller)
	require.NoError(t, err)

	reloaded, err := service.GetEventByID(testContext(), created.ID)
	require.NoError(t, err)
	form := reloaded.FormOfType(models.FormTypeAttendee)
	require.NotNil(t, form)
	assert.Equal(t, models.FormStatusPublished, form.Status)

	// Diğer formlar taslak kalır.
	assert.Equal(t, models.FormStatusDraft, reloaded.FormOfType(models.FormTypeVolunteer).Status)

	err = service.SetFormStatus(testContext(), created.ID, "sponsor", models.FormStatusPublished, caller)
	assert.ErrorIs(t, err, ErrInvalidFormType)

	err = service.SetFormStatus(testContext(), created.ID, models.FormTypeAttendee, "archived", caller)
	assert.ErrorIs(t, err, ErrEventInvalidInput)

	stranger := Caller{UserID: fx.organizer.ID + 9, Role: models.RolePlanner}
	err = service.SetFormStatus(testContext(), created.ID, models.FormTypeAttendee, models.FormStatusDraft, stranger)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSetFormQuestionsReplacesList(t *testing.T) {
	service, fx := newEventFixture(t)
	caller := organizerCaller(fx.organizer)

	created, err := service.CreateEvent(testContext(), caller, validEvent())
	require.NoError(t, err)

	questions := []models.EventQuestion{
		{FieldKey: "phone", Label: "Telefon", IsRequired: true, SortOrder: 0},
		{FieldKey: "company", Label: "Şirket", SortOrder: 1},
	}
	require.NoError(t, service.SetFormQuestions(testContext(), created.ID, models.FormTypeAttendee, questions, caller))

	reloaded, err := service.GetEventByID(testContext(), created.ID)
	require.NoError(t, err)
	form := reloaded.FormOfType(models.FormTypeAttendee)
	require.Len(t, form.Questions, 2)
	assert.Equal(t, "phone", form.Questions[0].FieldKey)

	// İkinci çağrı listeyi komple değiştirir.
	require.NoError(t, service.SetFormQuestions(testContext(), created.ID, models.FormTypeAttendee,
		[]models.EventQuestion{{FieldKey: "diet", Label: "Beslenme"}}, caller))

	reloaded, err = service.GetEventByID(testContext(), created.ID)
	require.NoError(t, err)
	form = reloaded.FormOfType(models.FormTypeAttendee)
	require.Len(t, form.Questions, 1)
	assert.Equal(t, "diet", form.Questions[0].FieldKey)

	// Eksik alan anahtarı reddedilir.
	err = service.SetFormQuestions(testContext(), created.ID, models.FormTypeAttendee,
		[]models.EventQuestion{{Label: "Adsız"}}, caller)
	assert.ErrorIs(t, err, ErrEventInvalidInput)
}

func TestUpdateAndDeleteEventAuthorization(t *testing.T) {
	service, fx := newEventFixture(t)
	caller := organizerCaller(fx.organizer)

	created, err := service.CreateEvent(testContext(), caller, validEvent())
	require.NoError(t, err)

	updates := validEvent()
	updates.Title = "Go Meetup (Güncel)"
	updates.IsEnabled = true
	require.NoError(t, service.UpdateEvent(testContext(), created.ID, caller, updates))

	reloaded, err := service.GetEventByID(testContext(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Meetup (Güncel)", reloaded.Title)

	stranger := Caller{UserID: fx.organizer.ID + 3, Role: models.RolePlanner}
	assert.ErrorIs(t, service.UpdateEvent(testContext(), created.ID, stranger, updates), ErrForbidden)
	assert.ErrorIs(t, service.DeleteEvent(testContext(), created.ID, stranger), ErrForbidden)

	require.NoError(t, service.DeleteEvent(testContext(), created.ID, caller))
	_, err = service.GetEventByID(testContext(), created.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
