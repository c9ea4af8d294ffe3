package postgres

import (
	"context"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const resumeColumns = `r.id, r.user_id, r.job_offer_id, r.file_path, r.file_name, r.cover_letter, r.status, r.created_at, r.updated_at`

const resumeUniqueConstraint = "resumes_user_job_offer_unique"

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

func resumeDest(r *domain.Resume) []interface{} {
	return []interface{}{
		&r.ID, &r.UserID, &r.JobOfferID, &r.FilePath, &r.FileName,
		&r.CoverLetter, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	}
}

// nullableInterview receives an interview from a LEFT JOIN
type nullableInterview struct {
	ID            *int64
	ResumeID      *int64
	ScheduledBy   *int64
	ScheduledTime *time.Time
	Location      *string
	Notes         *string
	Status        *string
	CreatedAt     *time.Time
	UpdatedAt     *time.Time
}

func (n *nullableInterview) dest() []interface{} {
	return []interface{}{
		&n.ID, &n.ResumeID, &n.ScheduledBy, &n.ScheduledTime, &n.Location,
		&n.Notes, &n.Status, &n.CreatedAt, &n.UpdatedAt,
	}
}

func (n *nullableInterview) interview() *domain.Interview {
	if n.ID == nil {
		return nil
	}
	return &domain.Interview{
		ID:            *n.ID,
		ResumeID:      *n.ResumeID,
		ScheduledBy:   *n.ScheduledBy,
		ScheduledTime: *n.ScheduledTime,
		Location:      n.Location,
		Notes:         n.Notes,
		Status:        domain.InterviewStatus(*n.Status),
		CreatedAt:     *n.CreatedAt,
		UpdatedAt:     *n.UpdatedAt,
	}
}

// Create inserts a resume. The (user, job offer) unique constraint is the
// final arbiter between concurrent submissions.
func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	now := time.Now()
	resume.CreatedAt = now
	resume.UpdatedAt = now
	if resume.Status == "" {
		resume.Status = domain.ResumeStatusPending
	}
	query := `
		INSERT INTO resumes (user_id, job_offer_id, file_path, file_name, cover_letter, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		resume.UserID, resume.JobOfferID, resume.FilePath, resume.FileName,
		resume.CoverLetter, resume.Status, resume.CreatedAt, resume.UpdatedAt,
	).Scan(&resume.ID)
	if database.IsUniqueViolation(err, resumeUniqueConstraint) {
		return domain.ErrDuplicateApplication
	}
	return err
}

func (r *resumeRepo) GetByID(ctx context.Context, id int64) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes r WHERE r.id = $1`
	var resume domain.Resume
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(resumeDest(&resume)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &resume, nil
}

// GetByIDForUpdate locks the row until the surrounding transaction ends
func (r *resumeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes r WHERE r.id = $1 FOR UPDATE`
	var resume domain.Resume
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(resumeDest(&resume)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepo) Exists(ctx context.Context, jobOfferID, userID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM resumes WHERE job_offer_id = $1 AND user_id = $2)`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, jobOfferID, userID).Scan(&exists)
	return exists, err
}

func (r *resumeRepo) UpdateStatus(ctx context.Context, id int64, status domain.ResumeStatus) error {
	query := `UPDATE resumes SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByJobOffer returns every application to a job offer with the applicant and interview
func (r *resumeRepo) ListByJobOffer(ctx context.Context, jobOfferID int64) ([]domain.ResumeView, error) {
	query := `
		SELECT ` + resumeColumns + `, ` + userColumns + `, ` + interviewColumns + `
		FROM resumes r
		JOIN users u ON u.id = r.user_id
		LEFT JOIN interviews i ON i.resume_id = r.id
		WHERE r.job_offer_id = $1
		ORDER BY r.created_at DESC, r.id DESC`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, jobOfferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []domain.ResumeView{}
	for rows.Next() {
		var (
			view        domain.ResumeView
			applicant   domain.User
			rawSettings []byte
			interview   nullableInterview
		)
		dest := resumeDest(&view.Resume)
		dest = append(dest,
			&applicant.ID, &applicant.Name, &applicant.Email, &applicant.Phone, &applicant.Location,
			&applicant.Bio, &rawSettings, &applicant.CreatedAt, &applicant.UpdatedAt,
		)
		dest = append(dest, interview.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		settings, err := domain.ParseUserSettings(rawSettings)
		if err != nil {
			return nil, err
		}
		applicant.Settings = settings
		public := applicant.Public()
		view.Applicant = &public
		view.Interview = interview.interview()
		views = append(views, view)
	}
	return views, rows.Err()
}

// SearchByApplicant lists the applicant's own applications with job offer, company and interview
func (r *resumeRepo) SearchByApplicant(ctx context.Context, filter domain.ApplicationFilter) ([]domain.ResumeView, int64, error) {
	from := `
		FROM resumes r
		JOIN job_offers jo ON jo.id = r.job_offer_id
		JOIN companies c ON c.id = jo.company_id
		LEFT JOIN interviews i ON i.resume_id = r.id`

	b := &queryBuilder{}
	b.where("r.user_id = " + b.arg(filter.ApplicantID))
	b.whereSearch(filter.Search, "jo.title", "c.name")
	b.whereIn("jo.type", filter.Types)
	b.whereIn("c.industry", filter.Industries)
	b.whereIn("r.status", filter.Statuses)
	b.whereRange("r.created_at", filter.AppliedAt)

	conn := database.Conn(ctx, r.db)

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*)`+from+b.clause(), b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + resumeColumns + `, ` + jobOfferColumns + `, ` + companyColumns + `, ` + interviewColumns +
		from + b.clause() + ` ORDER BY r.created_at DESC, r.id DESC` + b.page(filter.Page)

	rows, err := conn.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	views := []domain.ResumeView{}
	for rows.Next() {
		var (
			view      domain.ResumeView
			offer     domain.JobOfferWithCompany
			interview nullableInterview
		)
		dest := resumeDest(&view.Resume)
		dest = append(dest, jobOfferDest(&offer.JobOffer)...)
		dest = append(dest, companyDest(&offer.Company)...)
		dest = append(dest, interview.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, err
		}
		view.JobOffer = &offer
		view.Interview = interview.interview()
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return views, total, nil
}
