package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/internal/usecase"
	"github.com/JawherBalti/HiredIn-Back/pkg/apperror"
	"github.com/JawherBalti/HiredIn-Back/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

const (
	posterID    int64 = 1
	applicantID int64 = 2
	offerID     int64 = 10
	resumeID    int64 = 100
)

func strPtr(s string) *string { return &s }

func poster() *domain.User {
	return &domain.User{ID: posterID, Name: "Paula Poster", Email: "paula@example.test", Settings: domain.DefaultUserSettings()}
}

func applicant() *domain.User {
	return &domain.User{ID: applicantID, Name: "Alex Applicant", Email: "alex@example.test", Settings: domain.DefaultUserSettings()}
}

func offer() *domain.JobOfferWithCompany {
	return &domain.JobOfferWithCompany{
		JobOffer: domain.JobOffer{ID: offerID, UserID: posterID, CompanyID: 5, Title: "Backend Engineer", Status: domain.JobOfferStatusApplied},
		Company:  domain.Company{ID: 5, UserID: posterID, Name: "Acme"},
	}
}

func assertAppError(t *testing.T, err error, code int, sentinel error) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
	if sentinel != nil {
		assert.ErrorIs(t, err, sentinel)
	}
}

type workflow struct {
	tx            *fakeTx
	users         *MockUserRepo
	offers        *MockJobOfferRepo
	resumes       *MockResumeRepo
	interviews    *MockInterviewRepo
	notifications *memNotifications
	broadcaster   *capturingBroadcaster
	files         *memStorage
	dispatcher    *usecase.NotificationDispatcher
	applications  domain.ApplicationUsecase
	interviewUC   domain.InterviewUsecase
}

func newWorkflow(opts usecase.ApplicationOptions) *workflow {
	w := &workflow{
		tx:            &fakeTx{},
		users:         new(MockUserRepo),
		offers:        new(MockJobOfferRepo),
		resumes:       new(MockResumeRepo),
		interviews:    new(MockInterviewRepo),
		notifications: &memNotifications{},
		broadcaster:   &capturingBroadcaster{},
		files:         newMemStorage(),
	}
	if opts.MaxResumeBytes == 0 {
		opts.MaxResumeBytes = 2 << 20
	}
	w.dispatcher = usecase.NewNotificationDispatcher(w.notifications, w.users, w.broadcaster, nil, audit.NewNop())
	w.applications = usecase.NewApplicationUsecase(w.tx, w.resumes, w.offers, w.users, w.files, w.dispatcher, audit.NewNop(), opts)
	w.interviewUC = usecase.NewInterviewUsecase(w.tx, w.interviews, w.resumes, w.offers, w.dispatcher, audit.NewNop())
	return w
}

func pdfUpload() domain.ResumeUpload {
	return domain.ResumeUpload{File: bytes.NewReader(samplePDF), FileName: "cv.pdf", Size: int64(len(samplePDF))}
}

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()
	alex := domain.Actor{UserID: applicantID}

	t.Run("Should store the resume and notify the poster", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.resumes.On("Exists", mock.Anything, offerID, applicantID).Return(false, nil)
		w.users.On("GetByID", mock.Anything, applicantID).Return(applicant(), nil)
		w.users.On("GetByID", mock.Anything, posterID).Return(poster(), nil)
		w.resumes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Resume")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Resume).ID = resumeID }).
			Return(nil)

		resume, err := w.applications.Submit(ctx, alex, offerID, pdfUpload(), strPtr("Hello"))
		require.NoError(t, err)
		w.dispatcher.Wait()

		assert.Equal(t, domain.ResumeStatusPending, resume.Status)
		assert.Equal(t, "cv.pdf", resume.FileName)
		assert.Contains(t, w.files.files, resume.FilePath)

		inbox := w.notifications.forRecipient(posterID)
		require.Len(t, inbox, 1)
		assert.Equal(t, domain.NotificationJobApplied, inbox[0].Type)
		assert.Equal(t, "Alex Applicant applied for Backend Engineer job offer.", inbox[0].Message)
		assert.Equal(t, applicantID, inbox[0].SenderID)
		assert.Equal(t, 1, w.broadcaster.count(posterID))
	})

	t.Run("Should reject a second application with a conflict", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.resumes.On("Exists", mock.Anything, offerID, applicantID).Return(true, nil)

		_, err := w.applications.Submit(ctx, alex, offerID, pdfUpload(), nil)
		assertAppError(t, err, http.StatusConflict, domain.ErrDuplicateApplication)
		assert.Empty(t, w.files.files)
		assert.Empty(t, w.notifications.items)
	})

	t.Run("Should remove the stored file when the insert loses a race", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.resumes.On("Exists", mock.Anything, offerID, applicantID).Return(false, nil)
		w.users.On("GetByID", mock.Anything, applicantID).Return(applicant(), nil)
		w.users.On("GetByID", mock.Anything, posterID).Return(poster(), nil)
		w.resumes.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateApplication)

		_, err := w.applications.Submit(ctx, alex, offerID, pdfUpload(), nil)
		assertAppError(t, err, http.StatusConflict, domain.ErrDuplicateApplication)
		assert.Empty(t, w.files.files)
		assert.Len(t, w.files.deleted, 1)
	})

	t.Run("Should stay silent when the poster disabled push notifications", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		quiet := poster()
		quiet.Settings.Notifications.PushNotifications = false
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.resumes.On("Exists", mock.Anything, offerID, applicantID).Return(false, nil)
		w.users.On("GetByID", mock.Anything, applicantID).Return(applicant(), nil)
		w.users.On("GetByID", mock.Anything, posterID).Return(quiet, nil)
		w.resumes.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := w.applications.Submit(ctx, alex, offerID, pdfUpload(), nil)
		require.NoError(t, err)
		w.dispatcher.Wait()
		assert.Empty(t, w.notifications.forRecipient(posterID))
	})

	t.Run("Should reject a file that is not a resume", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.resumes.On("Exists", mock.Anything, offerID, applicantID).Return(false, nil)

		upload := domain.ResumeUpload{File: bytes.NewReader([]byte("MZ\x90\x00")), FileName: "cv.exe"}
		_, err := w.applications.Submit(ctx, alex, offerID, upload, nil)
		assertAppError(t, err, http.StatusUnprocessableEntity, domain.ErrValidation)
	})

	t.Run("Should return not found for an unknown job offer", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		w.offers.On("GetByIDWithCompany", mock.Anything, int64(999)).Return(nil, domain.ErrNotFound)

		_, err := w.applications.Submit(ctx, alex, 999, pdfUpload(), nil)
		assertAppError(t, err, http.StatusNotFound, domain.ErrNotFound)
	})
}

func TestChangeApplicationStatus(t *testing.T) {
	ctx := context.Background()
	paula := domain.Actor{UserID: posterID}

	pending := func() *domain.Resume {
		return &domain.Resume{ID: resumeID, UserID: applicantID, JobOfferID: offerID, FilePath: "resumes/2/x.pdf", FileName: "cv.pdf", Status: domain.ResumeStatusPending}
	}

	t.Run("Should notify the applicant of a decision", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(pending(), nil)
		w.resumes.On("GetByIDForUpdate", mock.Anything, resumeID).Return(pending(), nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.users.On("GetByID", mock.Anything, applicantID).Return(applicant(), nil)
		w.resumes.On("UpdateStatus", mock.Anything, resumeID, domain.ResumeStatusAccepted).Return(nil)

		resume, err := w.applications.ChangeStatus(ctx, paula, resumeID, domain.ResumeStatusAccepted)
		require.NoError(t, err)
		w.dispatcher.Wait()

		assert.Equal(t, domain.ResumeStatusAccepted, resume.Status)
		inbox := w.notifications.forRecipient(applicantID)
		require.Len(t, inbox, 1)
		assert.Equal(t, "Your job application has been accepted.", inbox[0].Message)
		assert.Equal(t, posterID, inbox[0].SenderID)
	})

	t.Run("Should treat the same status as a no-op", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(pending(), nil)
		w.resumes.On("GetByIDForUpdate", mock.Anything, resumeID).Return(pending(), nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)

		_, err := w.applications.ChangeStatus(ctx, paula, resumeID, domain.ResumeStatusPending)
		require.NoError(t, err)
		w.resumes.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, w.notifications.items)
	})

	t.Run("Should reset to pending without notifying", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		reviewed := pending()
		reviewed.Status = domain.ResumeStatusReviewed
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(reviewed, nil)
		w.resumes.On("GetByIDForUpdate", mock.Anything, resumeID).Return(reviewed, nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.users.On("GetByID", mock.Anything, applicantID).Return(applicant(), nil)
		w.resumes.On("UpdateStatus", mock.Anything, resumeID, domain.ResumeStatusPending).Return(nil)

		_, err := w.applications.ChangeStatus(ctx, paula, resumeID, domain.ResumeStatusPending)
		require.NoError(t, err)
		w.dispatcher.Wait()
		assert.Empty(t, w.notifications.items)
	})

	t.Run("Should respect the applicant's application update preference", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		quiet := applicant()
		quiet.Settings.Notifications.ApplicationUpdates = false
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(pending(), nil)
		w.resumes.On("GetByIDForUpdate", mock.Anything, resumeID).Return(pending(), nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.users.On("GetByID", mock.Anything, applicantID).Return(quiet, nil)
		w.resumes.On("UpdateStatus", mock.Anything, resumeID, domain.ResumeStatusRejected).Return(nil)

		_, err := w.applications.ChangeStatus(ctx, paula, resumeID, domain.ResumeStatusRejected)
		require.NoError(t, err)
		w.dispatcher.Wait()
		assert.Empty(t, w.notifications.items)
	})

	t.Run("Should decide against the locked row, not the earlier read", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		alreadyAccepted := pending()
		alreadyAccepted.Status = domain.ResumeStatusAccepted
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(pending(), nil)
		w.resumes.On("GetByIDForUpdate", mock.Anything, resumeID).Return(alreadyAccepted, nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)

		resume, err := w.applications.ChangeStatus(ctx, paula, resumeID, domain.ResumeStatusAccepted)
		require.NoError(t, err)
		w.dispatcher.Wait()

		assert.Equal(t, domain.ResumeStatusAccepted, resume.Status)
		w.resumes.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, w.notifications.items)
	})

	t.Run("Should reject an unknown status", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		_, err := w.applications.ChangeStatus(ctx, paula, resumeID, domain.ResumeStatus("hired"))
		assertAppError(t, err, http.StatusUnprocessableEntity, domain.ErrValidation)
	})

	t.Run("Should restrict status changes to the poster when enforced", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{EnforceStatusOwnership: true})
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(pending(), nil)
		w.resumes.On("GetByIDForUpdate", mock.Anything, resumeID).Return(pending(), nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)

		_, err := w.applications.ChangeStatus(ctx, domain.Actor{UserID: 77}, resumeID, domain.ResumeStatusAccepted)
		assertAppError(t, err, http.StatusForbidden, domain.ErrUnauthorized)
	})

	t.Run("Should roll back when the notification cannot be recorded", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		w.notifications.createErr = errors.New("connection reset")
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(pending(), nil)
		w.resumes.On("GetByIDForUpdate", mock.Anything, resumeID).Return(pending(), nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.users.On("GetByID", mock.Anything, applicantID).Return(applicant(), nil)
		w.resumes.On("UpdateStatus", mock.Anything, resumeID, domain.ResumeStatusAccepted).Return(nil)

		_, err := w.applications.ChangeStatus(ctx, paula, resumeID, domain.ResumeStatusAccepted)
		assertAppError(t, err, http.StatusInternalServerError, nil)
		w.dispatcher.Wait()
		assert.Zero(t, w.broadcaster.count(applicantID))
	})
}

func TestDownloadURL(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(usecase.ApplicationOptions{DownloadTTL: time.Minute})
	resume := &domain.Resume{ID: resumeID, UserID: applicantID, JobOfferID: offerID, FilePath: "resumes/2/a.pdf", FileName: "cv.pdf"}
	w.files.files[resume.FilePath] = samplePDF
	w.resumes.On("GetByID", mock.Anything, resumeID).Return(resume, nil)
	w.offers.On("GetByID", mock.Anything, offerID).Return(&offer().JobOffer, nil)

	url, err := w.applications.DownloadURL(ctx, domain.Actor{UserID: applicantID}, resumeID)
	require.NoError(t, err)
	assert.Contains(t, url, resume.FilePath)

	_, err = w.applications.DownloadURL(ctx, domain.Actor{UserID: posterID}, resumeID)
	require.NoError(t, err)

	_, err = w.applications.DownloadURL(ctx, domain.Actor{UserID: 77}, resumeID)
	assertAppError(t, err, http.StatusForbidden, domain.ErrUnauthorized)
}

func TestScheduleInterview(t *testing.T) {
	ctx := context.Background()
	paula := domain.Actor{UserID: posterID}
	tomorrow := time.Now().Add(24 * time.Hour).Truncate(time.Minute)

	accepted := func() *domain.Resume {
		return &domain.Resume{ID: resumeID, UserID: applicantID, JobOfferID: offerID, Status: domain.ResumeStatusAccepted}
	}

	t.Run("Should replace the existing interview and notify the applicant", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(accepted(), nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.interviews.On("DeleteByResumeID", mock.Anything, resumeID).Return(nil)
		w.interviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Interview")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Interview).ID = 7 }).
			Return(nil)

		interview, err := w.interviewUC.Schedule(ctx, paula, resumeID, domain.ScheduleInterviewInput{
			ScheduledTime: tomorrow,
			Location:      strPtr("Room 4"),
		})
		require.NoError(t, err)
		w.dispatcher.Wait()

		assert.Equal(t, domain.InterviewStatusScheduled, interview.Status)
		assert.Equal(t, posterID, interview.ScheduledBy)
		w.interviews.AssertCalled(t, "DeleteByResumeID", mock.Anything, resumeID)

		inbox := w.notifications.forRecipient(applicantID)
		require.Len(t, inbox, 1)
		assert.Equal(t, domain.NotificationInterviewScheduled, inbox[0].Type)
		assert.Contains(t, inbox[0].Message, "Backend Engineer")
		assert.Contains(t, inbox[0].Message, tomorrow.UTC().Format("2006-01-02 15:04"))
	})

	t.Run("Should refuse applications that are not accepted", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		resume := accepted()
		resume.Status = domain.ResumeStatusReviewed
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(resume, nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)

		_, err := w.interviewUC.Schedule(ctx, paula, resumeID, domain.ScheduleInterviewInput{ScheduledTime: tomorrow})
		assertAppError(t, err, http.StatusUnprocessableEntity, domain.ErrInvalidState)
	})

	t.Run("Should refuse a time in the past", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(accepted(), nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)

		_, err := w.interviewUC.Schedule(ctx, paula, resumeID, domain.ScheduleInterviewInput{ScheduledTime: time.Now().Add(-time.Hour)})
		assertAppError(t, err, http.StatusUnprocessableEntity, domain.ErrValidation)
	})

	t.Run("Should check ownership before state", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		resume := accepted()
		resume.Status = domain.ResumeStatusPending
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(resume, nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)

		_, err := w.interviewUC.Schedule(ctx, domain.Actor{UserID: 77}, resumeID, domain.ScheduleInterviewInput{ScheduledTime: tomorrow})
		assertAppError(t, err, http.StatusForbidden, domain.ErrUnauthorized)
	})
}

func TestUpdateInterview(t *testing.T) {
	ctx := context.Background()
	paula := domain.Actor{UserID: posterID}
	at := time.Now().Add(48 * time.Hour).Truncate(time.Minute)

	existing := func() *domain.Interview {
		return &domain.Interview{ID: 7, ResumeID: resumeID, ScheduledBy: posterID, ScheduledTime: at, Location: strPtr("Room 4"), Status: domain.InterviewStatusScheduled}
	}
	setup := func(w *workflow, current *domain.Interview) {
		w.interviews.On("GetByID", mock.Anything, int64(7)).Return(current, nil)
		w.resumes.On("GetByID", mock.Anything, resumeID).Return(&domain.Resume{ID: resumeID, UserID: applicantID, JobOfferID: offerID, Status: domain.ResumeStatusAccepted}, nil)
		w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
		w.interviews.On("Update", mock.Anything, mock.Anything).Return(nil)
	}

	t.Run("Should notify a location change", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		setup(w, existing())

		updated, err := w.interviewUC.Update(ctx, paula, 7, domain.UpdateInterviewInput{
			Location: domain.OptionalString{Set: true, Value: strPtr("Video call")},
		})
		require.NoError(t, err)
		w.dispatcher.Wait()

		assert.Equal(t, "Video call", *updated.Location)
		inbox := w.notifications.forRecipient(applicantID)
		require.Len(t, inbox, 1)
		assert.Equal(t, "Your interview for the Backend Engineer position will now take place at Video call.", inbox[0].Message)
	})

	t.Run("Should keep notes and status edits silent", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		setup(w, existing())
		completed := domain.InterviewStatusCompleted

		updated, err := w.interviewUC.Update(ctx, paula, 7, domain.UpdateInterviewInput{
			Notes:  domain.OptionalString{Set: true, Value: strPtr("Bring a portfolio")},
			Status: &completed,
		})
		require.NoError(t, err)
		w.dispatcher.Wait()

		assert.Equal(t, domain.InterviewStatusCompleted, updated.Status)
		assert.Equal(t, "Room 4", *updated.Location)
		assert.Empty(t, w.notifications.items)
	})

	t.Run("Should clear the location with an explicit null", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		setup(w, existing())

		updated, err := w.interviewUC.Update(ctx, paula, 7, domain.UpdateInterviewInput{
			Location: domain.OptionalString{Set: true},
		})
		require.NoError(t, err)
		w.dispatcher.Wait()
		assert.Nil(t, updated.Location)
		assert.Len(t, w.notifications.items, 1)
	})

	t.Run("Should refuse to reopen a terminal interview", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		done := existing()
		done.Status = domain.InterviewStatusCanceled
		setup(w, done)
		scheduled := domain.InterviewStatusScheduled

		_, err := w.interviewUC.Update(ctx, paula, 7, domain.UpdateInterviewInput{Status: &scheduled})
		assertAppError(t, err, http.StatusUnprocessableEntity, domain.ErrInvalidTransition)
	})

	t.Run("Should only let the scheduler update", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		setup(w, existing())

		_, err := w.interviewUC.Update(ctx, domain.Actor{UserID: applicantID}, 7, domain.UpdateInterviewInput{})
		assertAppError(t, err, http.StatusForbidden, domain.ErrUnauthorized)
	})

	t.Run("Should refuse a location longer than the column allows", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		setup(w, existing())

		_, err := w.interviewUC.Update(ctx, paula, 7, domain.UpdateInterviewInput{
			Location: domain.OptionalString{Set: true, Value: strPtr(strings.Repeat("a", domain.MaxLocationLength+1))},
		})
		assertAppError(t, err, http.StatusUnprocessableEntity, domain.ErrValidation)
		w.interviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

		updated, err := w.interviewUC.Update(ctx, paula, 7, domain.UpdateInterviewInput{
			Location: domain.OptionalString{Set: true, Value: strPtr(strings.Repeat("é", domain.MaxLocationLength))},
		})
		require.NoError(t, err)
		w.dispatcher.Wait()
		assert.Equal(t, domain.MaxLocationLength, utf8.RuneCountInString(*updated.Location))
	})

	t.Run("Should refuse a past time", func(t *testing.T) {
		w := newWorkflow(usecase.ApplicationOptions{})
		setup(w, existing())
		past := time.Now().Add(-time.Minute)

		_, err := w.interviewUC.Update(ctx, paula, 7, domain.UpdateInterviewInput{ScheduledTime: &past})
		assertAppError(t, err, http.StatusUnprocessableEntity, domain.ErrValidation)
	})
}

// Apply, accept, schedule and reschedule: one notification for the poster, three for the applicant
func TestApplicationToInterviewScenario(t *testing.T) {
	ctx := context.Background()
	w := newWorkflow(usecase.ApplicationOptions{})

	var stored *domain.Resume
	w.offers.On("GetByIDWithCompany", mock.Anything, offerID).Return(offer(), nil)
	w.resumes.On("Exists", mock.Anything, offerID, applicantID).Return(false, nil)
	w.users.On("GetByID", mock.Anything, applicantID).Return(applicant(), nil)
	w.users.On("GetByID", mock.Anything, posterID).Return(poster(), nil)
	w.resumes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Resume")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Resume)
			stored.ID = resumeID
		}).
		Return(nil)
	w.resumes.On("UpdateStatus", mock.Anything, resumeID, domain.ResumeStatusAccepted).Return(nil)
	w.interviews.On("DeleteByResumeID", mock.Anything, resumeID).Return(nil)
	var created []*domain.Interview
	w.interviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Interview")).
		Run(func(args mock.Arguments) {
			interview := args.Get(1).(*domain.Interview)
			interview.ID = int64(len(created) + 1)
			created = append(created, interview)
		}).
		Return(nil)

	_, err := w.applications.Submit(ctx, domain.Actor{UserID: applicantID}, offerID, pdfUpload(), nil)
	require.NoError(t, err)
	require.NotNil(t, stored)
	w.resumes.On("GetByID", mock.Anything, resumeID).Return(stored, nil)
	w.resumes.On("GetByIDForUpdate", mock.Anything, resumeID).Return(stored, nil)

	_, err = w.applications.ChangeStatus(ctx, domain.Actor{UserID: posterID}, resumeID, domain.ResumeStatusAccepted)
	require.NoError(t, err)

	t1 := time.Now().Add(72 * time.Hour).Truncate(time.Minute)
	t2 := t1.Add(24 * time.Hour)

	_, err = w.interviewUC.Schedule(ctx, domain.Actor{UserID: posterID}, resumeID, domain.ScheduleInterviewInput{ScheduledTime: t1})
	require.NoError(t, err)

	// scheduling again replaces the first interview
	final, err := w.interviewUC.Schedule(ctx, domain.Actor{UserID: posterID}, resumeID, domain.ScheduleInterviewInput{ScheduledTime: t2})
	require.NoError(t, err)
	w.dispatcher.Wait()

	assert.True(t, final.ScheduledTime.Equal(t2))
	require.Len(t, created, 2)
	w.interviews.AssertNumberOfCalls(t, "DeleteByResumeID", 2)

	assert.Len(t, w.notifications.items, 4)
	assert.Len(t, w.notifications.forRecipient(posterID), 1)
	applicantInbox := w.notifications.forRecipient(applicantID)
	require.Len(t, applicantInbox, 3)
	assert.Equal(t, domain.NotificationInterviewScheduled, applicantInbox[0].Type)
	assert.Contains(t, applicantInbox[0].Message, t2.UTC().Format("2006-01-02 15:04"))
	assert.Equal(t, domain.NotificationInterviewScheduled, applicantInbox[1].Type)
	assert.Contains(t, applicantInbox[1].Message, t1.UTC().Format("2006-01-02 15:04"))
	assert.Equal(t, domain.NotificationApplicationStatusChanged, applicantInbox[2].Type)
	assert.Equal(t, 3, w.broadcaster.count(applicantID))
}
