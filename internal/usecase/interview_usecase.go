package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/audit"
)

var locationTooLong = fmt.Sprintf("The location must not be longer than %d characters.", domain.MaxLocationLength)

type interviewUsecase struct {
	tx         domain.Transactor
	interviews domain.InterviewRepository
	resumes    domain.ResumeRepository
	offers     domain.JobOfferRepository
	notifier   domain.NotificationDispatcher
	audit      domain.AuditRecorder
	now        func() time.Time
}

// NewInterviewUsecase creates a new interview usecase
func NewInterviewUsecase(
	tx domain.Transactor,
	interviews domain.InterviewRepository,
	resumes domain.ResumeRepository,
	offers domain.JobOfferRepository,
	notifier domain.NotificationDispatcher,
	auditor domain.AuditRecorder,
) domain.InterviewUsecase {
	return &interviewUsecase{
		tx:         tx,
		interviews: interviews,
		resumes:    resumes,
		offers:     offers,
		notifier:   notifier,
		audit:      auditor,
		now:        time.Now,
	}
}

// Schedule replaces any existing interview for the resume with a new one.
// Checks run in order: resume exists, actor posted the job, the
// application is accepted, the time is in the future.
func (uc *interviewUsecase) Schedule(ctx context.Context, actor domain.Actor, resumeID int64, input domain.ScheduleInterviewInput) (*domain.Interview, error) {
	resume, err := uc.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return nil, fail(err, "Resume not found")
	}
	offer, err := uc.offers.GetByIDWithCompany(ctx, resume.JobOfferID)
	if err != nil {
		return nil, fail(err, "Job offer not found")
	}
	if offer.UserID != actor.UserID {
		uc.denied(ctx, actor, "resume", resumeID)
		return nil, forbidden("Only the job poster can schedule an interview.")
	}
	if resume.Status != domain.ResumeStatusAccepted {
		return nil, fail(domain.ErrInvalidState, "Interviews can only be scheduled for accepted applications.")
	}
	if !input.ScheduledTime.After(uc.now()) {
		return nil, invalid("The scheduled time must be a date after now.")
	}
	if domain.LocationTooLong(input.Location) {
		return nil, invalid(locationTooLong)
	}

	interview := &domain.Interview{
		ResumeID:      resumeID,
		ScheduledBy:   actor.UserID,
		ScheduledTime: input.ScheduledTime,
		Location:      input.Location,
		Notes:         input.Notes,
		Status:        domain.InterviewStatusScheduled,
	}

	err = commitAndDeliver(ctx, uc.tx, uc.notifier, func(ctx context.Context, record func(domain.NotificationIntent) error) error {
		if err := uc.interviews.DeleteByResumeID(ctx, resumeID); err != nil {
			return err
		}
		if err := uc.interviews.Create(ctx, interview); err != nil {
			return err
		}
		if intent, ok := domain.DecideInterviewScheduled(resume.UserID, *offer, *interview); ok {
			return record(intent)
		}
		return nil
	})
	if err != nil {
		return nil, fail(err, "")
	}

	uc.audit.Record(ctx, domain.AuditEvent{
		Action:    audit.ActionInterviewScheduled,
		ActorID:   actor.UserID,
		Subject:   "interview",
		SubjectID: interview.ID,
		Details:   map[string]any{"resume_id": resumeID, "scheduled_time": interview.ScheduledTime.UTC()},
	})
	return interview, nil
}

// Update edits the interview in place. The applicant hears about it only
// when the time or the location moved.
func (uc *interviewUsecase) Update(ctx context.Context, actor domain.Actor, interviewID int64, input domain.UpdateInterviewInput) (*domain.Interview, error) {
	before, err := uc.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, fail(err, "Interview not found")
	}
	if before.ScheduledBy != actor.UserID {
		uc.denied(ctx, actor, "interview", interviewID)
		return nil, forbidden("Only the interviewer can update this interview.")
	}
	if input.ScheduledTime != nil && !input.ScheduledTime.After(uc.now()) {
		return nil, invalid("The scheduled time must be a date after now.")
	}
	if input.Location.Set && domain.LocationTooLong(input.Location.Value) {
		return nil, invalid(locationTooLong)
	}

	after := *before
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, invalid("The selected status is invalid.")
		}
		if !before.Status.CanTransitionTo(*input.Status) {
			return nil, fail(domain.ErrInvalidTransition, "A "+string(before.Status)+" interview cannot become "+string(*input.Status)+".")
		}
		after.Status = *input.Status
	}
	if input.ScheduledTime != nil {
		after.ScheduledTime = *input.ScheduledTime
	}
	if input.Location.Set {
		after.Location = input.Location.Value
	}
	if input.Notes.Set {
		after.Notes = input.Notes.Value
	}

	resume, err := uc.resumes.GetByID(ctx, before.ResumeID)
	if err != nil {
		return nil, fail(err, "Resume not found")
	}
	offer, err := uc.offers.GetByIDWithCompany(ctx, resume.JobOfferID)
	if err != nil {
		return nil, fail(err, "Job offer not found")
	}

	err = commitAndDeliver(ctx, uc.tx, uc.notifier, func(ctx context.Context, record func(domain.NotificationIntent) error) error {
		if err := uc.interviews.Update(ctx, &after); err != nil {
			return err
		}
		if intent, ok := domain.DecideInterviewUpdated(resume.UserID, *offer, *before, after); ok {
			return record(intent)
		}
		return nil
	})
	if err != nil {
		return nil, fail(err, "Interview not found")
	}

	diff := domain.DiffInterview(*before, after)
	uc.audit.Record(ctx, domain.AuditEvent{
		Action:    audit.ActionInterviewUpdated,
		ActorID:   actor.UserID,
		Subject:   "interview",
		SubjectID: interviewID,
		Details: map[string]any{
			"time_changed":     diff.TimeChanged,
			"location_changed": diff.LocationChanged,
			"status":           string(after.Status),
		},
	})
	return &after, nil
}

// GetForResume returns the interview of a resume to its applicant or the job poster
func (uc *interviewUsecase) GetForResume(ctx context.Context, actor domain.Actor, resumeID int64) (*domain.Interview, error) {
	resume, err := uc.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return nil, fail(err, "Resume not found")
	}
	if resume.UserID != actor.UserID {
		offer, err := uc.offers.GetByID(ctx, resume.JobOfferID)
		if err != nil {
			return nil, fail(err, "Job offer not found")
		}
		if offer.UserID != actor.UserID {
			uc.denied(ctx, actor, "resume", resumeID)
			return nil, forbidden("You are not allowed to view this interview.")
		}
	}
	interview, err := uc.interviews.GetByResumeID(ctx, resumeID)
	if err != nil {
		return nil, fail(err, "No interview has been scheduled for this application.")
	}
	return interview, nil
}

// ListMine lists interviews the actor attends or has scheduled
func (uc *interviewUsecase) ListMine(ctx context.Context, actor domain.Actor, filter domain.InterviewFilter) (*domain.Page[domain.InterviewView], error) {
	switch filter.Role {
	case "":
		filter.Role = domain.InterviewRoleApplicant
	case domain.InterviewRoleApplicant, domain.InterviewRoleScheduler:
	default:
		return nil, invalid("The role must be applicant or scheduler.")
	}
	filter.UserID = actor.UserID
	filter.Page = filter.Page.Normalize()

	views, total, err := uc.interviews.Search(ctx, filter)
	if err != nil {
		return nil, fail(err, "")
	}
	page := domain.NewPage(views, total, filter.Page)
	return &page, nil
}

func (uc *interviewUsecase) denied(ctx context.Context, actor domain.Actor, subject string, id int64) {
	uc.audit.Record(ctx, domain.AuditEvent{
		Action:    audit.ActionAccessDenied,
		ActorID:   actor.UserID,
		Subject:   subject,
		SubjectID: id,
	})
}
