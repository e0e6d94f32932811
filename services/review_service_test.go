package services

import (
	"testing"

	"etkinlik.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture(t *testing.T) (IReviewService, *testFixture) {
	db := newTestDB(t)
	organizer := createOrganizer(t, db)
	return NewReviewServiceWithDB(db), &testFixture{db: db, organizer: organizer}
}

func TestSubmitReviewRules(t *testing.T) {
	service, fx := newReviewFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)
	caller := Caller{UserID: 42, Role: models.RoleUser}

	_, err := service.SubmitReview(testContext(), event.ID, 0, "kötüydü", caller)
	assert.ErrorIs(t, err, ErrReviewInvalidScore)
	_, err = service.SubmitReview(testContext(), event.ID, 6, "harikaydı", caller)
	assert.ErrorIs(t, err, ErrReviewInvalidScore)

	_, err = service.SubmitReview(testContext(), event.ID, 5, "harikaydı", Caller{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	review, err := service.SubmitReview(testContext(), event.ID, 5, "harikaydı", caller)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPending, review.Status)

	// Kullanıcı başına tek değerlendirme.
	_, err = service.SubmitReview(testContext(), event.ID, 4, "fikrim değişti", caller)
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestModerateAndReplyReview(t *testing.T) {
	service, fx := newReviewFixture(t)
	event := createEventWithForm(t, fx.db, fx.organizer.ID, models.FormTypeAttendee, models.FormStatusPublished, nil)
	owner := organizerCaller(fx.organizer)

	review, err := service.SubmitReview(testContext(), event.ID, 4, "iyiydi", Caller{UserID: 42, Role: models.RoleUser})
	require.NoError(t, err)

	stranger := Caller{UserID: fx.organizer.ID + 5, Role: models.RolePlanner}
	assert.ErrorIs(t, service.ModerateReview(testContext(), review.ID, models.SubmissionStatusApproved, stranger), ErrForbidden)

	require.NoError(t, service.ModerateReview(testContext(), review.ID, models.SubmissionStatusApproved, owner))

	var reloaded models.Review
	require.NoError(t, fx.db.First(&reloaded, review.ID).Error)
	assert.Equal(t, models.SubmissionStatusApproved, reloaded.Status)

	assert.ErrorIs(t, service.ReplyToReview(testContext(), review.ID, "", owner), ErrEventInvalidInput)
	require.NoError(t, service.ReplyToReview(testContext(), review.ID, "Teşekkürler!", owner))

	require.NoError(t, fx.db.First(&reloaded, review.ID).Error)
	assert.Equal(t, "Teşekkürler!", reloaded.Reply)
	require.NotNil(t, reloaded.RepliedAt)
	require.NotNil(t, reloaded.RepliedBy)
	assert.Equal(t, fx.organizer.ID, *reloaded.RepliedBy)
}
