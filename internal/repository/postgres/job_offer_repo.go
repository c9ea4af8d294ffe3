package postgres

import (
	"context"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobOfferColumns = `jo.id, jo.user_id, jo.company_id, jo.title, jo.description, jo.status, jo.type,
	jo.deadline, jo.salary, jo.location, jo.created_at, jo.updated_at`

const jobOfferWithCompanyFrom = ` FROM job_offers jo JOIN companies c ON c.id = jo.company_id`

type jobOfferRepo struct {
	db *pgxpool.Pool
}

func NewJobOfferRepository(db *pgxpool.Pool) domain.JobOfferRepository {
	return &jobOfferRepo{db: db}
}

func jobOfferDest(o *domain.JobOffer) []interface{} {
	return []interface{}{
		&o.ID, &o.UserID, &o.CompanyID, &o.Title, &o.Description, &o.Status, &o.Type,
		&o.Deadline, &o.Salary, &o.Location, &o.CreatedAt, &o.UpdatedAt,
	}
}

func companyDest(c *domain.Company) []interface{} {
	return []interface{}{
		&c.ID, &c.UserID, &c.Name, &c.Website, &c.Industry,
		&c.Description, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt,
	}
}

func scanJobOfferWithCompany(row pgx.Row) (*domain.JobOfferWithCompany, error) {
	var o domain.JobOfferWithCompany
	dest := append(jobOfferDest(&o.JobOffer), companyDest(&o.Company)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *jobOfferRepo) Create(ctx context.Context, offer *domain.JobOffer) error {
	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now
	query := `
		INSERT INTO job_offers (user_id, company_id, title, description, status, type, deadline, salary, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	return database.Conn(ctx, r.db).QueryRow(ctx, query,
		offer.UserID, offer.CompanyID, offer.Title, offer.Description, offer.Status, offer.Type,
		offer.Deadline, offer.Salary, offer.Location, offer.CreatedAt, offer.UpdatedAt,
	).Scan(&offer.ID)
}

func (r *jobOfferRepo) GetByID(ctx context.Context, id int64) (*domain.JobOffer, error) {
	query := `SELECT ` + jobOfferColumns + ` FROM job_offers jo WHERE jo.id = $1`
	var offer domain.JobOffer
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(jobOfferDest(&offer)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// GetByIDWithCompany retrieves a job offer with its company
func (r *jobOfferRepo) GetByIDWithCompany(ctx context.Context, id int64) (*domain.JobOfferWithCompany, error) {
	query := `SELECT ` + jobOfferColumns + `, ` + companyColumns + jobOfferWithCompanyFrom + ` WHERE jo.id = $1`
	offer, err := scanJobOfferWithCompany(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return offer, nil
}

// Search lists job offers newest first, filtered by free text (title or
// company name), type, industry, status and owner.
func (r *jobOfferRepo) Search(ctx context.Context, filter domain.JobOfferFilter) ([]domain.JobOfferWithCompany, int64, error) {
	b := &queryBuilder{}
	b.whereSearch(filter.Search, "jo.title", "c.name")
	b.whereIn("jo.type", filter.Types)
	b.whereIn("c.industry", filter.Industries)
	b.whereIn("jo.status", filter.Statuses)
	if filter.OwnerID != nil {
		b.where("jo.user_id = " + b.arg(*filter.OwnerID))
	}

	conn := database.Conn(ctx, r.db)

	var total int64
	countQuery := `SELECT COUNT(*)` + jobOfferWithCompanyFrom + b.clause()
	if err := conn.QueryRow(ctx, countQuery, b.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	where := b.clause()
	query := `SELECT ` + jobOfferColumns + `, ` + companyColumns + jobOfferWithCompanyFrom + where +
		` ORDER BY jo.created_at DESC, jo.id DESC` + b.page(filter.Page)

	offers, err := r.collect(ctx, query, b.args...)
	if err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

// Recent returns the latest job offers for the landing page
func (r *jobOfferRepo) Recent(ctx context.Context, limit int) ([]domain.JobOfferWithCompany, error) {
	query := `SELECT ` + jobOfferColumns + `, ` + companyColumns + jobOfferWithCompanyFrom +
		` ORDER BY jo.created_at DESC, jo.id DESC LIMIT $1`
	return r.collect(ctx, query, limit)
}

func (r *jobOfferRepo) collect(ctx context.Context, query string, args ...interface{}) ([]domain.JobOfferWithCompany, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := []domain.JobOfferWithCompany{}
	for rows.Next() {
		o, err := scanJobOfferWithCompany(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *o)
	}
	return offers, rows.Err()
}

func (r *jobOfferRepo) Update(ctx context.Context, offer *domain.JobOffer) error {
	offer.UpdatedAt = time.Now()
	query := `
		UPDATE job_offers SET company_id = $2, title = $3, description = $4, status = $5, type = $6,
			deadline = $7, salary = $8, location = $9, updated_at = $10
		WHERE id = $1`
	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		offer.ID, offer.CompanyID, offer.Title, offer.Description, offer.Status, offer.Type,
		offer.Deadline, offer.Salary, offer.Location, offer.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobOfferRepo) Delete(ctx context.Context, id int64) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM job_offers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
