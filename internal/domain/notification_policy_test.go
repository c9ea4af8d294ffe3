package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOffer() JobOfferWithCompany {
	return JobOfferWithCompany{
		JobOffer: JobOffer{ID: 10, UserID: 1, Title: "Backend Engineer"},
		Company:  Company{ID: 5, Name: "Acme"},
	}
}

func testUser(id int64, name string) User {
	return User{ID: id, Name: name, Settings: DefaultUserSettings()}
}

func TestDecideJobApplied(t *testing.T) {
	applicant, poster := testUser(2, "Alex"), testUser(1, "Paula")

	intent, ok := DecideJobApplied(applicant, poster, testOffer())
	require.True(t, ok)
	assert.Equal(t, int64(1), intent.RecipientID)
	assert.Equal(t, int64(2), intent.SenderID)
	assert.Equal(t, "Alex applied for Backend Engineer job offer.", intent.Message)
	assert.Equal(t, "Acme", intent.Data["company_name"])

	poster.Settings.Notifications.PushNotifications = false
	_, ok = DecideJobApplied(applicant, poster, testOffer())
	assert.False(t, ok)
}

func TestDecideStatusChanged(t *testing.T) {
	applicant := testUser(2, "Alex")

	intent, ok := DecideStatusChanged(applicant, 1, testOffer(), ResumeStatusPending, ResumeStatusRejected)
	require.True(t, ok)
	assert.Equal(t, "Your job application has been rejected.", intent.Message)
	assert.Equal(t, "pending", intent.Data["previous_status"])

	_, ok = DecideStatusChanged(applicant, 1, testOffer(), ResumeStatusAccepted, ResumeStatusPending)
	assert.False(t, ok, "reset to pending is silent")

	_, ok = DecideStatusChanged(applicant, 1, testOffer(), ResumeStatusReviewed, ResumeStatusReviewed)
	assert.False(t, ok, "same status is silent")

	applicant.Settings.Notifications.ApplicationUpdates = false
	_, ok = DecideStatusChanged(applicant, 1, testOffer(), ResumeStatusPending, ResumeStatusAccepted)
	assert.False(t, ok)
}

func TestDecideInterviewUpdated(t *testing.T) {
	at := time.Date(2030, 3, 4, 9, 30, 0, 0, time.UTC)
	room, call := "Room 4", "Video call"
	before := Interview{ID: 7, ScheduledBy: 1, ScheduledTime: at, Location: &room, Status: InterviewStatusScheduled}

	t.Run("notes only", func(t *testing.T) {
		after := before
		notes := "Bring a portfolio"
		after.Notes = &notes
		_, ok := DecideInterviewUpdated(2, testOffer(), before, after)
		assert.False(t, ok)
	})

	t.Run("time only", func(t *testing.T) {
		after := before
		after.ScheduledTime = at.Add(24 * time.Hour)
		intent, ok := DecideInterviewUpdated(2, testOffer(), before, after)
		require.True(t, ok)
		assert.Equal(t, "Your interview for the Backend Engineer position was rescheduled to 2030-03-05 09:30 UTC.", intent.Message)
		assert.Equal(t, true, intent.Data["time_changed"])
		assert.Equal(t, false, intent.Data["location_changed"])
	})

	t.Run("time and location", func(t *testing.T) {
		after := before
		after.ScheduledTime = at.Add(time.Hour)
		after.Location = &call
		intent, ok := DecideInterviewUpdated(2, testOffer(), before, after)
		require.True(t, ok)
		assert.Equal(t, "Your interview for the Backend Engineer position was moved to 2030-03-04 10:30 UTC at Video call.", intent.Message)
	})

	t.Run("location cleared", func(t *testing.T) {
		after := before
		after.Location = nil
		intent, ok := DecideInterviewUpdated(2, testOffer(), before, after)
		require.True(t, ok)
		assert.Contains(t, intent.Message, "a location to be confirmed")
	})
}

func TestDecideInterviewScheduled(t *testing.T) {
	at := time.Date(2030, 3, 4, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	intent, ok := DecideInterviewScheduled(2, testOffer(), Interview{ID: 7, ScheduledBy: 1, ScheduledTime: at})
	require.True(t, ok)
	assert.Equal(t, "Your interview for the Backend Engineer position has been scheduled for 2030-03-04 08:30 UTC.", intent.Message)
	assert.Equal(t, "2030-03-04T08:30:00Z", intent.Data["scheduled_time"])
	assert.Equal(t, int64(10), intent.Data["job_offer_id"])
}
