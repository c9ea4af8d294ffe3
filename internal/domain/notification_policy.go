package domain

import (
	"fmt"
	"time"
)

// The Decide* functions are pure: they look at old/new state and the
// recipient's preferences and say whether a notification is due.

const notificationTimeLayout = "2006-01-02 15:04 MST"

func jobOfferData(offer JobOfferWithCompany) map[string]any {
	return map[string]any{
		"job_offer_id":    offer.ID,
		"job_offer_title": offer.Title,
		"company_name":    offer.Company.Name,
	}
}

// DecideJobApplied tells the poster someone applied, unless they turned push notifications off
func DecideJobApplied(applicant, poster User, offer JobOfferWithCompany) (NotificationIntent, bool) {
	if !poster.Settings.Notifications.PushNotifications {
		return NotificationIntent{}, false
	}
	return NotificationIntent{
		RecipientID: poster.ID,
		SenderID:    applicant.ID,
		Type:        NotificationJobApplied,
		Message:     fmt.Sprintf("%s applied for %s job offer.", applicant.Name, offer.Title),
		Data:        jobOfferData(offer),
	}, true
}

// DecideStatusChanged tells the applicant their application moved. Resets to
// pending and same-status updates are silent.
func DecideStatusChanged(applicant User, senderID int64, offer JobOfferWithCompany, previous, next ResumeStatus) (NotificationIntent, bool) {
	if next == ResumeStatusPending || previous == next {
		return NotificationIntent{}, false
	}
	if !applicant.Settings.Notifications.ApplicationUpdates {
		return NotificationIntent{}, false
	}
	data := jobOfferData(offer)
	data["status"] = string(next)
	data["previous_status"] = string(previous)
	return NotificationIntent{
		RecipientID: applicant.ID,
		SenderID:    senderID,
		Type:        NotificationApplicationStatusChanged,
		Message:     fmt.Sprintf("Your job application has been %s.", next),
		Data:        data,
	}, true
}

// DecideInterviewScheduled always notifies the applicant
func DecideInterviewScheduled(applicantID int64, offer JobOfferWithCompany, interview Interview) (NotificationIntent, bool) {
	return NotificationIntent{
		RecipientID: applicantID,
		SenderID:    interview.ScheduledBy,
		Type:        NotificationInterviewScheduled,
		Message: fmt.Sprintf("Your interview for the %s position has been scheduled for %s.",
			offer.Title, interview.ScheduledTime.UTC().Format(notificationTimeLayout)),
		Data: map[string]any{
			"interview_id":   interview.ID,
			"job_offer_id":   offer.ID,
			"job_title":      offer.Title,
			"scheduled_time": interview.ScheduledTime.UTC().Format(time.RFC3339),
			"location":       interview.Location,
		},
	}, true
}

// InterviewDiff captures the user-visible changes between two interview versions
type InterviewDiff struct {
	OldTime         time.Time `json:"old_time"`
	NewTime         time.Time `json:"new_time"`
	OldLocation     *string   `json:"old_location"`
	NewLocation     *string   `json:"new_location"`
	TimeChanged     bool      `json:"time_changed"`
	LocationChanged bool      `json:"location_changed"`
}

func (d InterviewDiff) Changed() bool {
	return d.TimeChanged || d.LocationChanged
}

func DiffInterview(before, after Interview) InterviewDiff {
	return InterviewDiff{
		OldTime:         before.ScheduledTime,
		NewTime:         after.ScheduledTime,
		OldLocation:     before.Location,
		NewLocation:     after.Location,
		TimeChanged:     !before.ScheduledTime.Equal(after.ScheduledTime),
		LocationChanged: !sameString(before.Location, after.Location),
	}
}

// DecideInterviewUpdated notifies the applicant when the time or place moved.
// Notes and status edits alone are silent.
func DecideInterviewUpdated(applicantID int64, offer JobOfferWithCompany, before, after Interview) (NotificationIntent, bool) {
	diff := DiffInterview(before, after)
	if !diff.Changed() {
		return NotificationIntent{}, false
	}

	var message string
	switch {
	case diff.TimeChanged && diff.LocationChanged:
		message = fmt.Sprintf("Your interview for the %s position was moved to %s at %s.",
			offer.Title, after.ScheduledTime.UTC().Format(notificationTimeLayout), displayLocation(after.Location))
	case diff.TimeChanged:
		message = fmt.Sprintf("Your interview for the %s position was rescheduled to %s.",
			offer.Title, after.ScheduledTime.UTC().Format(notificationTimeLayout))
	default:
		message = fmt.Sprintf("Your interview for the %s position will now take place at %s.",
			offer.Title, displayLocation(after.Location))
	}

	return NotificationIntent{
		RecipientID: applicantID,
		SenderID:    after.ScheduledBy,
		Type:        NotificationInterviewUpdated,
		Message:     message,
		Data: map[string]any{
			"interview_id":     after.ID,
			"job_offer_id":     offer.ID,
			"job_title":        offer.Title,
			"old_time":         diff.OldTime.UTC().Format(time.RFC3339),
			"new_time":         diff.NewTime.UTC().Format(time.RFC3339),
			"old_location":     diff.OldLocation,
			"new_location":     diff.NewLocation,
			"time_changed":     diff.TimeChanged,
			"location_changed": diff.LocationChanged,
		},
	}, true
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func displayLocation(loc *string) string {
	if loc == nil || *loc == "" {
		return "a location to be confirmed"
	}
	return *loc
}
