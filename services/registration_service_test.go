package services

import (
	"testing"

	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistrationFixture(t *testing.T) (IRegistrationService, *fakeTransport, *testFixture) {
	db := newTestDB(t)
	transport := newFakeTransport()
	notifier := NewNotificationDispatcherWithDeps(db, transport)
	service := NewRegistrationServiceWithDB(db, notifier)
	organizer := createOrganizer(t, db)
	return service, transport, &testFixture{db: db, organizer: organizer}
}

func TestSubmitFormRejectsUnpublishedForm(t *testing.T) {
	service, _, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusDraft, nil)

	_, err := service.SubmitForm(testContext(), event.ID, models.FormTypeAttendee,
		map[string]interface{}{"email": "a@b.com"}, SubmitterIdentity{})
	assert.ErrorIs(t, err, ErrFormNotPublished)
}

func TestSubmitFormUnknownEventAndFormType(t *testing.T) {
	service, _, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)

	_, err := service.SubmitForm(testContext(), 9999, models.FormTypeAttendee, nil, SubmitterIdentity{})
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = service.SubmitForm(testContext(), event.ID, "sponsor", nil, SubmitterIdentity{})
	assert.ErrorIs(t, err, ErrInvalidFormType)

	// Etkinlikte hiç açılmamış form türü de yayında değildir.
	_, err = service.SubmitForm(testContext(), event.ID, models.FormTypeSpeaker, nil, SubmitterIdentity{})
	assert.ErrorIs(t, err, ErrFormNotPublished)
}

func TestSubmitFormReportsAllMissingRequiredFields(t *testing.T) {
	service, _, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeVolunteer, models.FormStatusPublished,
		map[string]bool{"phone": true, "tshirt_size": true, "note": false})

	_, err := service.SubmitForm(testContext(), event.ID, models.FormTypeVolunteer,
		map[string]interface{}{"name": "Ali Veli", "email": "ali@ornek.com"}, SubmitterIdentity{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"phone", "tshirt_size"}, validationErr.Fields)
	assert.Contains(t, validationErr.Error(), "zorunlu alanlar eksik")
}

func TestSubmitFormExtractsIdentityAndStoresPending(t *testing.T) {
	service, _, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)

	submission, err := service.SubmitForm(testContext(), event.ID, models.FormTypeAttendee,
		map[string]interface{}{"question_name_42": "Jane Doe", "email": "jane@x.com"}, SubmitterIdentity{})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", submission.Name)
	assert.Equal(t, "jane@x.com", submission.Email)
	assert.Equal(t, models.SubmissionStatusPending, submission.Status)
	assert.False(t, submission.IsCheckedIn)
}

func TestSubmitFormDuplicateByEmail(t *testing.T) {
	service, _, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)

	answers := map[string]interface{}{"name": "Ayşe", "email": "ayse@ornek.com"}
	_, err := service.SubmitForm(testContext(), event.ID, models.FormTypeAttendee, answers, SubmitterIdentity{})
	require.NoError(t, err)

	// Aynı e-posta, büyük harfle bile olsa mükerrer sayılır.
	_, err = service.SubmitForm(testContext(), event.ID, models.FormTypeAttendee,
		map[string]interface{}{"name": "Ayşe", "email": "AYSE@ornek.com"}, SubmitterIdentity{})
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitFormRejectedAllowsResubmission(t *testing.T) {
	service, _, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)

	first, err := service.SubmitForm(testContext(), event.ID, models.FormTypeAttendee,
		map[string]interface{}{"name": "Can", "email": "can@ornek.com"}, SubmitterIdentity{})
	require.NoError(t, err)

	_, err = service.Moderate(testContext(), first.ID, models.SubmissionStatusRejected, "", organizerCaller(fx.organizer))
	require.NoError(t, err)

	// Reddedilmiş başvuru yeni başvuruyu engellemez.
	_, err = service.SubmitForm(testContext(), event.ID, models.FormTypeAttendee,
		map[string]interface{}{"name": "Can", "email": "can@ornek.com"}, SubmitterIdentity{})
	assert.NoError(t, err)
}

func TestModerateApprovesAndNotifies(t *testing.T) {
	service, transport, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeSpeaker, models.FormStatusPublished, nil)
	sub := createSubmission(t, fx.db, event.ID, models.FormTypeSpeaker, models.SubmissionStatusPending, "Deniz", "deniz@ornek.com")

	updated, err := service.Moderate(testContext(), sub.ID, models.SubmissionStatusApproved, "", organizerCaller(fx.organizer))
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, updated.Status)

	require.Equal(t, 1, transport.sentCount())
	msg := transport.lastMessage()
	assert.Equal(t, "deniz@ornek.com", msg.To)
	assert.Contains(t, msg.Subject, "Konuşmacı başvurunuz onaylandı")
}

func TestModerateRejectionCarriesAdditionalInfo(t *testing.T) {
	service, transport, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)
	sub := createSubmission(t, fx.db, event.ID, models.FormTypeAttendee, models.SubmissionStatusPending, "Ece", "ece@ornek.com")

	_, err := service.Moderate(testContext(), sub.ID, models.SubmissionStatusRejected, "Kontenjan doldu", organizerCaller(fx.organizer))
	require.NoError(t, err)

	msg := transport.lastMessage()
	assert.Contains(t, msg.Text, "Açıklama: Kontenjan doldu")
}

func TestModerateIsIdempotentAndUnconditional(t *testing.T) {
	service, _, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)
	sub := createSubmission(t, fx.db, event.ID, models.FormTypeAttendee, models.SubmissionStatusPending, "Ali", "ali@ornek.com")
	caller := organizerCaller(fx.organizer)

	updated, err := service.Moderate(testContext(), sub.ID, models.SubmissionStatusApproved, "", caller)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, updated.Status)

	// Aynı karar tekrar uygulanabilir.
	updated, err = service.Moderate(testContext(), sub.ID, models.SubmissionStatusApproved, "", caller)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, updated.Status)

	// Onaylanmış başvuru sonradan reddedilebilir.
	updated, err = service.Moderate(testContext(), sub.ID, models.SubmissionStatusRejected, "", caller)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusRejected, updated.Status)
}

func TestModerateAuthorization(t *testing.T) {
	service, _, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)
	sub := createSubmission(t, fx.db, event.ID, models.FormTypeAttendee, models.SubmissionStatusPending, "Ali", "ali@ornek.com")

	// Başka bir organizatör müdahale edemez.
	stranger := Caller{UserID: fx.organizer.ID + 100, Role: models.RolePlanner}
	_, err := service.Moderate(testContext(), sub.ID, models.SubmissionStatusApproved, "", stranger)
	assert.ErrorIs(t, err, ErrForbidden)

	// Anonim çağrı reddedilir.
	_, err = service.Moderate(testContext(), sub.ID, models.SubmissionStatusApproved, "", Caller{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Super-admin her etkinliğe müdahale edebilir.
	admin := Caller{UserID: 555, Role: models.RoleSuperAdmin}
	_, err = service.Moderate(testContext(), sub.ID, models.SubmissionStatusApproved, "", admin)
	assert.NoError(t, err)

	// Geçersiz karar hiç işlem yapmaz.
	_, err = service.Moderate(testContext(), sub.ID, "postponed", "", admin)
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestBulkModerateCountsMatchedRows(t *testing.T) {
	service, _, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)
	other := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)

	a := createSubmission(t, fx.db, event.ID, models.FormTypeAttendee, models.SubmissionStatusPending, "A", "a@ornek.com")
	b := createSubmission(t, fx.db, event.ID, models.FormTypeAttendee, models.SubmissionStatusPending, "B", "b@ornek.com")
	foreign := createSubmission(t, fx.db, other.ID, models.FormTypeAttendee, models.SubmissionStatusPending, "C", "c@ornek.com")

	caller := organizerCaller(fx.organizer)

	// Kapsam dışı id'ler (başka etkinlik, var olmayan kayıt) sessizce elenir.
	modified, err := service.BulkModerate(testContext(), event.ID, models.FormTypeAttendee,
		[]uint{a.ID, b.ID, foreign.ID, 9999}, models.SubmissionStatusApproved, caller)
	require.NoError(t, err)
	assert.Equal(t, int64(2), modified)

	var foreignReloaded models.FormSubmission
	require.NoError(t, fx.db.First(&foreignReloaded, foreign.ID).Error)
	assert.Equal(t, models.SubmissionStatusPending, foreignReloaded.Status)

	// Zaten hedef durumda olan satırlar da eşleşme sayısına girer.
	modified, err = service.BulkModerate(testContext(), event.ID, models.FormTypeAttendee,
		[]uint{a.ID, b.ID}, models.SubmissionStatusApproved, caller)
	require.NoError(t, err)
	assert.Equal(t, int64(2), modified)
}

func TestListSubmissionsFiltersAndPaginates(t *testing.T) {
	service, _, fx := newRegistrationFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)
	createSubmission(t, fx.db, event.ID, models.FormTypeAttendee, models.SubmissionStatusPending, "Ali", "ali@ornek.com")
	createSubmission(t, fx.db, event.ID, models.FormTypeAttendee, models.SubmissionStatusApproved, "Veli", "veli@ornek.com")

	params := queryparams.DefaultListParams("created_at")
	params.Status = string(models.SubmissionStatusApproved)

	result, err := service.ListSubmissions(testContext(), event.ID, params, organizerCaller(fx.organizer))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Meta.TotalItems)

	submissions, ok := result.Data.([]models.FormSubmission)
	require.True(t, ok)
	require.Len(t, submissions, 1)
	assert.Equal(t, "Veli", submissions[0].Name)
}
