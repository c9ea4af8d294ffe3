package postgres

import (
	"context"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const interviewColumns = `i.id, i.resume_id, i.scheduled_by, i.scheduled_time, i.location, i.notes, i.status, i.created_at, i.updated_at`

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

func interviewDest(i *domain.Interview) []interface{} {
	return []interface{}{
		&i.ID, &i.ResumeID, &i.ScheduledBy, &i.ScheduledTime, &i.Location,
		&i.Notes, &i.Status, &i.CreatedAt, &i.UpdatedAt,
	}
}

func (r *interviewRepo) get(ctx context.Context, where string, arg interface{}) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews i WHERE ` + where
	var interview domain.Interview
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, arg).Scan(interviewDest(&interview)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	return r.get(ctx, "i.id = $1", id)
}

func (r *interviewRepo) GetByResumeID(ctx context.Context, resumeID int64) (*domain.Interview, error) {
	return r.get(ctx, "i.resume_id = $1", resumeID)
}

func (r *interviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	now := time.Now()
	interview.CreatedAt = now
	interview.UpdatedAt = now
	query := `
		INSERT INTO interviews (resume_id, scheduled_by, scheduled_time, location, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	return database.Conn(ctx, r.db).QueryRow(ctx, query,
		interview.ResumeID, interview.ScheduledBy, interview.ScheduledTime, interview.Location,
		interview.Notes, interview.Status, interview.CreatedAt, interview.UpdatedAt,
	).Scan(&interview.ID)
}

// DeleteByResumeID removes the resume's interview if there is one
func (r *interviewRepo) DeleteByResumeID(ctx context.Context, resumeID int64) error {
	_, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM interviews WHERE resume_id = $1`, resumeID)
	return err
}

func (r *interviewRepo) Update(ctx context.Context, interview *domain.Interview) error {
	interview.UpdatedAt = time.Now()
	query := `
		UPDATE interviews SET scheduled_time = $2, location = $3, notes = $4, status = $5, updated_at = $6
		WHERE id = $1`
	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		interview.ID, interview.ScheduledTime, interview.Location, interview.Notes, interview.Status, interview.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search lists interviews the user takes part in, ordered by scheduled time
func (r *interviewRepo) Search(ctx context.Context, filter domain.InterviewFilter) ([]domain.InterviewView, int64, error) {
	from := `
		FROM interviews i
		JOIN resumes r ON r.id = i.resume_id
		JOIN job_offers jo ON jo.id = r.job_offer_id
		JOIN companies c ON c.id = jo.company_id
		JOIN users u ON u.id = r.user_id`

	b := &queryBuilder{}
	if filter.Role == domain.InterviewRoleScheduler {
		b.where("i.scheduled_by = " + b.arg(filter.UserID))
	} else {
		b.where("r.user_id = " + b.arg(filter.UserID))
	}
	b.whereSearch(filter.Search, "jo.title", "c.name", "u.name")
	b.whereIn("i.status", filter.Statuses)
	b.whereRange("i.scheduled_time", filter.ScheduledAt)

	conn := database.Conn(ctx, r.db)

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*)`+from+b.clause(), b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + interviewColumns + `, ` + jobOfferColumns + `, ` + companyColumns + `, ` + userColumns +
		from + b.clause() + ` ORDER BY i.scheduled_time ASC, i.id ASC` + b.page(filter.Page)

	rows, err := conn.Query(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	views := []domain.InterviewView{}
	for rows.Next() {
		var (
			view        domain.InterviewView
			rawSettings []byte
		)
		a := &view.Applicant
		dest := interviewDest(&view.Interview)
		dest = append(dest, jobOfferDest(&view.JobOffer.JobOffer)...)
		dest = append(dest, companyDest(&view.JobOffer.Company)...)
		dest = append(dest, &a.ID, &a.Name, &a.Email, &a.Phone, &a.Location, &a.Bio, &rawSettings, &a.CreatedAt, &a.UpdatedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, err
		}
		settings, err := domain.ParseUserSettings(rawSettings)
		if err != nil {
			return nil, 0, err
		}
		a.Settings = settings
		view.Applicant = a.Public()
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return views, total, nil
}
