package services

import (
	"fmt"
	"testing"

	"etkinlik.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotifierFixture(t *testing.T) (INotificationDispatcher, *fakeTransport, *gorm.DB) {
	db := newTestDB(t)
	transport := newFakeTransport()
	return NewNotificationDispatcherWithDeps(db, transport), transport, db
}

func TestNotifySuccessWritesAuditRow(t *testing.T) {
	notifier, transport, db := newNotifierFixture(t)

	result := notifier.Notify(testContext(), KindAttendeeApproval, NotificationPayload{
		ID:         "n-1",
		To:         "ali@ornek.com",
		Name:       "Ali",
		EventTitle: "Go Konferansı",
	})
	assert.True(t, result.Success)
	assert.Equal(t, "n-1", result.ID)
	assert.Empty(t, result.Error)
	assert.Equal(t, 1, transport.sentCount())

	var audit models.SentEmail
	require.NoError(t, db.First(&audit).Error)
	assert.Equal(t, "ali@ornek.com", audit.Recipient)
	assert.Equal(t, models.EmailStatusSent, audit.Status)
	assert.Equal(t, string(KindAttendeeApproval), audit.Kind)
	assert.Contains(t, audit.Subject, "Go Konferansı")
}

func TestNotifyMalformedRecipientFailsWithoutSending(t *testing.T) {
	notifier, transport, db := newNotifierFixture(t)

	result := notifier.Notify(testContext(), KindAttendeeApproval, NotificationPayload{
		ID: "n-2", To: "adres-gecersiz", Name: "X", EventTitle: "E",
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, string(ErrInvalidRecipient))
	assert.Equal(t, 0, transport.sentCount())

	var audit models.SentEmail
	require.NoError(t, db.First(&audit).Error)
	assert.Equal(t, models.EmailStatusFailed, audit.Status)
	assert.NotEmpty(t, audit.Error)
}

func TestNotifyTransportFailureRecorded(t *testing.T) {
	notifier, transport, db := newNotifierFixture(t)
	transport.failFor["bozuk@ornek.com"] = true

	result := notifier.Notify(testContext(), KindTicket, NotificationPayload{
		ID: "n-3", To: "bozuk@ornek.com", Name: "X", EventTitle: "E",
	})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)

	var audit models.SentEmail
	require.NoError(t, db.First(&audit).Error)
	assert.Equal(t, models.EmailStatusFailed, audit.Status)
}

func TestNotifyUnknownKind(t *testing.T) {
	notifier, transport, _ := newNotifierFixture(t)

	result := notifier.Notify(testContext(), "telgraf", NotificationPayload{To: "a@b.com"})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, string(ErrUnknownNotificationKind))
	assert.Equal(t, 0, transport.sentCount())
}

func TestNotifyCustomKindRequiresSubject(t *testing.T) {
	notifier, transport, _ := newNotifierFixture(t)

	result := notifier.Notify(testContext(), KindCustom, NotificationPayload{To: "a@b.com", Body: "gövde"})
	assert.False(t, result.Success)

	result = notifier.Notify(testContext(), KindCustom, NotificationPayload{
		To: "a@b.com", Subject: "Duyuru", Body: "gövde",
	})
	assert.True(t, result.Success)
	assert.Equal(t, "Duyuru", transport.lastMessage().Subject)
}

func TestNotifyBatchPreservesOrderAndSurvivesFailures(t *testing.T) {
	notifier, transport, db := newNotifierFixture(t)
	transport.failFor["kotu@ornek.com"] = true

	payloads := make([]NotificationPayload, 0, 6)
	for i := 0; i < 6; i++ {
		to := fmt.Sprintf("kisi%d@ornek.com", i)
		if i == 2 {
			to = "bozuk-adres" // "@" yok
		}
		if i == 4 {
			to = "kotu@ornek.com"
		}
		payloads = append(payloads, NotificationPayload{
			ID:         fmt.Sprintf("item-%d", i),
			To:         to,
			Name:       fmt.Sprintf("Kişi %d", i),
			EventTitle: "Go Konferansı",
		})
	}

	results := notifier.NotifyBatch(testContext(), KindReminder, payloads)
	require.Len(t, results, len(payloads))

	// Sonuçlar girdi sırasıyla döner; tekil hatalar kardeşleri durdurmaz.
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("item-%d", i), r.ID)
		if i == 2 || i == 4 {
			assert.False(t, r.Success)
			assert.NotEmpty(t, r.Error)
		} else {
			assert.True(t, r.Success)
		}
	}
	assert.Equal(t, 4, transport.sentCount())

	var failed int64
	require.NoError(t, db.Model(&models.SentEmail{}).Where("status = ?", models.EmailStatusFailed).Count(&failed).Error)
	assert.Equal(t, int64(2), failed)
}

func TestDecisionKindSelection(t *testing.T) {
	assert.Equal(t, KindAttendeeApproval, DecisionKind(models.FormTypeAttendee, models.SubmissionStatusApproved))
	assert.Equal(t, KindAttendeeRejection, DecisionKind(models.FormTypeAttendee, models.SubmissionStatusRejected))
	assert.Equal(t, KindVolunteerApproval, DecisionKind(models.FormTypeVolunteer, models.SubmissionStatusApproved))
	assert.Equal(t, KindVolunteerRejection, DecisionKind(models.FormTypeVolunteer, models.SubmissionStatusRejected))
	assert.Equal(t, KindSpeakerApproval, DecisionKind(models.FormTypeSpeaker, models.SubmissionStatusApproved))
	assert.Equal(t, KindSpeakerRejection, DecisionKind(models.FormTypeSpeaker, models.SubmissionStatusRejected))
}
