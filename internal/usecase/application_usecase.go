package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/audit"
	"github.com/JawherBalti/HiredIn-Back/pkg/logger"
	"github.com/JawherBalti/HiredIn-Back/pkg/storage"
)

// ApplicationOptions tunes the application workflow
type ApplicationOptions struct {
	MaxResumeBytes int64
	DownloadTTL    time.Duration
	// EnforceStatusOwnership restricts status changes to the job poster
	EnforceStatusOwnership bool
}

type applicationUsecase struct {
	tx       domain.Transactor
	resumes  domain.ResumeRepository
	offers   domain.JobOfferRepository
	users    domain.UserRepository
	files    domain.FileStorage
	notifier domain.NotificationDispatcher
	audit    domain.AuditRecorder
	opts     ApplicationOptions
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	tx domain.Transactor,
	resumes domain.ResumeRepository,
	offers domain.JobOfferRepository,
	users domain.UserRepository,
	files domain.FileStorage,
	notifier domain.NotificationDispatcher,
	auditor domain.AuditRecorder,
	opts ApplicationOptions,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		tx:       tx,
		resumes:  resumes,
		offers:   offers,
		users:    users,
		files:    files,
		notifier: notifier,
		audit:    auditor,
		opts:     opts,
	}
}

// Submit stores the resume file, then records the application and the
// poster's notification in one transaction.
func (uc *applicationUsecase) Submit(ctx context.Context, actor domain.Actor, jobOfferID int64, upload domain.ResumeUpload, coverLetter *string) (*domain.Resume, error) {
	// 1. Job offer must exist
	offer, err := uc.offers.GetByIDWithCompany(ctx, jobOfferID)
	if err != nil {
		return nil, fail(err, "Job offer not found")
	}

	// 2. One application per user and job offer
	exists, err := uc.resumes.Exists(ctx, jobOfferID, actor.UserID)
	if err != nil {
		return nil, fail(err, "")
	}
	if exists {
		return nil, fail(domain.ErrDuplicateApplication, "You have already applied for this job offer.")
	}

	// 3. Validate the file
	if upload.File == nil {
		return nil, invalid("The resume field is required.")
	}
	data, err := io.ReadAll(io.LimitReader(upload.File, uc.opts.MaxResumeBytes+1))
	if err != nil {
		return nil, fail(err, "")
	}
	contentType, err := storage.ValidateResume(upload.FileName, data, uc.opts.MaxResumeBytes)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFile) {
			return nil, invalid(strings.TrimPrefix(err.Error(), storage.ErrInvalidFile.Error()+": "))
		}
		return nil, fail(err, "")
	}

	applicant, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, fail(err, "User not found")
	}
	poster, err := uc.users.GetByID(ctx, offer.UserID)
	if err != nil {
		return nil, fail(err, "Job poster not found")
	}

	// 4. Store the file before opening the transaction
	key := storage.ResumeKey(actor.UserID, upload.FileName)
	if err := uc.files.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, fail(err, "")
	}

	resume := &domain.Resume{
		UserID:      actor.UserID,
		JobOfferID:  jobOfferID,
		FilePath:    key,
		FileName:    upload.FileName,
		CoverLetter: coverLetter,
		Status:      domain.ResumeStatusPending,
	}

	// 5. Resume + notification atomically
	err = commitAndDeliver(ctx, uc.tx, uc.notifier, func(ctx context.Context, record func(domain.NotificationIntent) error) error {
		if err := uc.resumes.Create(ctx, resume); err != nil {
			return err
		}
		if intent, ok := domain.DecideJobApplied(*applicant, *poster, *offer); ok {
			return record(intent)
		}
		return nil
	})
	if err != nil {
		if delErr := uc.files.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			logger.Log.Warn("Failed to remove orphaned resume file", "key", key, "error", delErr)
		}
		return nil, fail(err, "You have already applied for this job offer.")
	}

	uc.audit.Record(ctx, domain.AuditEvent{
		Action:    audit.ActionApplicationSubmitted,
		ActorID:   actor.UserID,
		Subject:   "resume",
		SubjectID: resume.ID,
		Details:   map[string]any{"job_offer_id": jobOfferID},
	})
	return resume, nil
}

// ListMine returns the actor's applications, newest first
func (uc *applicationUsecase) ListMine(ctx context.Context, actor domain.Actor, filter domain.ApplicationFilter) (*domain.Page[domain.ResumeView], error) {
	filter.ApplicantID = actor.UserID
	filter.Page = filter.Page.Normalize()

	views, total, err := uc.resumes.SearchByApplicant(ctx, filter)
	if err != nil {
		return nil, fail(err, "")
	}
	page := domain.NewPage(views, total, filter.Page)
	return &page, nil
}

// ChangeStatus moves an application to status and tells the applicant
func (uc *applicationUsecase) ChangeStatus(ctx context.Context, actor domain.Actor, resumeID int64, status domain.ResumeStatus) (*domain.Resume, error) {
	if !status.Valid() {
		return nil, invalid("The selected status is invalid.")
	}

	resume, err := uc.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return nil, fail(err, "Resume not found")
	}
	offer, err := uc.offers.GetByIDWithCompany(ctx, resume.JobOfferID)
	if err != nil {
		return nil, fail(err, "Job offer not found")
	}
	if uc.opts.EnforceStatusOwnership && offer.UserID != actor.UserID {
		uc.denied(ctx, actor, "resume", resumeID)
		return nil, forbidden("Only the job poster can update this application.")
	}

	// the status is re-read under a row lock so concurrent changes serialise
	var previous domain.ResumeStatus
	noop := false
	err = commitAndDeliver(ctx, uc.tx, uc.notifier, func(ctx context.Context, record func(domain.NotificationIntent) error) error {
		locked, err := uc.resumes.GetByIDForUpdate(ctx, resumeID)
		if err != nil {
			return err
		}
		resume = locked
		previous = locked.Status
		if !previous.CanTransitionTo(status) {
			return fail(domain.ErrInvalidTransition, fmt.Sprintf("Cannot move an application from %s to %s.", previous, status))
		}
		if previous == status {
			noop = true
			return nil
		}

		applicant, err := uc.users.GetByID(ctx, locked.UserID)
		if err != nil {
			return fail(err, "Applicant not found")
		}
		if err := uc.resumes.UpdateStatus(ctx, resumeID, status); err != nil {
			return err
		}
		if intent, ok := domain.DecideStatusChanged(*applicant, actor.UserID, *offer, previous, status); ok {
			return record(intent)
		}
		return nil
	})
	if err != nil {
		return nil, fail(err, "Resume not found")
	}
	if noop {
		return resume, nil
	}

	resume.Status = status
	resume.UpdatedAt = time.Now()
	uc.audit.Record(ctx, domain.AuditEvent{
		Action:    audit.ActionApplicationStatusChanged,
		ActorID:   actor.UserID,
		Subject:   "resume",
		SubjectID: resumeID,
		Details:   map[string]any{"from": string(previous), "to": string(status)},
	})
	return resume, nil
}

// ListForJobOffer returns every application to the actor's job offer
func (uc *applicationUsecase) ListForJobOffer(ctx context.Context, actor domain.Actor, jobOfferID int64) ([]domain.ResumeView, error) {
	if _, err := uc.ownedOffer(ctx, actor, jobOfferID); err != nil {
		return nil, err
	}
	views, err := uc.resumes.ListByJobOffer(ctx, jobOfferID)
	if err != nil {
		return nil, fail(err, "")
	}
	return views, nil
}

// ExportForJobOffer renders the applicants of the actor's job offer as xlsx
func (uc *applicationUsecase) ExportForJobOffer(ctx context.Context, actor domain.Actor, jobOfferID int64) ([]byte, string, error) {
	offer, err := uc.ownedOffer(ctx, actor, jobOfferID)
	if err != nil {
		return nil, "", err
	}
	views, err := uc.resumes.ListByJobOffer(ctx, jobOfferID)
	if err != nil {
		return nil, "", fail(err, "")
	}
	data, err := exportApplicants(offer, views)
	if err != nil {
		return nil, "", fail(err, "")
	}
	filename := fmt.Sprintf("applicants_%d_%s.xlsx", jobOfferID, time.Now().Format("20060102_150405"))
	return data, filename, nil
}

// DownloadURL returns a short-lived link to the resume file for its applicant or the job poster
func (uc *applicationUsecase) DownloadURL(ctx context.Context, actor domain.Actor, resumeID int64) (string, error) {
	resume, err := uc.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return "", fail(err, "Resume not found")
	}
	if resume.UserID != actor.UserID {
		offer, err := uc.offers.GetByID(ctx, resume.JobOfferID)
		if err != nil {
			return "", fail(err, "Job offer not found")
		}
		if offer.UserID != actor.UserID {
			uc.denied(ctx, actor, "resume", resumeID)
			return "", forbidden("You are not allowed to download this resume.")
		}
	}
	url, err := uc.files.PresignGet(ctx, resume.FilePath, resume.FileName, uc.opts.DownloadTTL)
	if err != nil {
		return "", fail(err, "")
	}
	return url, nil
}

func (uc *applicationUsecase) ownedOffer(ctx context.Context, actor domain.Actor, jobOfferID int64) (*domain.JobOffer, error) {
	offer, err := uc.offers.GetByID(ctx, jobOfferID)
	if err != nil {
		return nil, fail(err, "Job offer not found")
	}
	if offer.UserID != actor.UserID {
		uc.denied(ctx, actor, "job_offer", jobOfferID)
		return nil, forbidden("You can only view applications to your own job offers.")
	}
	return offer, nil
}

func (uc *applicationUsecase) denied(ctx context.Context, actor domain.Actor, subject string, id int64) {
	uc.audit.Record(ctx, domain.AuditEvent{
		Action:    audit.ActionAccessDenied,
		ActorID:   actor.UserID,
		Subject:   subject,
		SubjectID: id,
	})
}
