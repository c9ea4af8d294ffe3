package postgres

import (
	"context"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `c.id, c.user_id, c.name, c.website, c.industry, c.description, c.logo_url, c.created_at, c.updated_at`

// advisory lock namespace for per-owner company creation
const companyLockNamespace = 7301

type companyRepo struct {
	db *pgxpool.Pool
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Website, &c.Industry,
		&c.Description, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves a company by its ID
func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies c WHERE c.id = $1`
	company, err := scanCompany(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return company, nil
}

func (r *companyRepo) List(ctx context.Context) ([]domain.Company, error) {
	return r.list(ctx, `SELECT `+companyColumns+` FROM companies c ORDER BY c.name ASC`)
}

func (r *companyRepo) ListByUserID(ctx context.Context, userID int64) ([]domain.Company, error) {
	return r.list(ctx, `SELECT `+companyColumns+` FROM companies c WHERE c.user_id = $1 ORDER BY c.created_at ASC`, userID)
}

func (r *companyRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Company, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// CreateWithLimit takes a transaction-scoped advisory lock on the owner so the
// count and the insert cannot interleave with a concurrent request.
func (r *companyRepo) CreateWithLimit(ctx context.Context, company *domain.Company, limit int) error {
	return database.NewTransactor(r.db).WithinTransaction(ctx, func(ctx context.Context) error {
		conn := database.Conn(ctx, r.db)

		if _, err := conn.Exec(ctx, `SELECT pg_advisory_xact_lock($1::int, $2::int)`, companyLockNamespace, int32(company.UserID)); err != nil {
			return err
		}

		var count int
		if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM companies WHERE user_id = $1`, company.UserID).Scan(&count); err != nil {
			return err
		}
		if count >= limit {
			return domain.ErrCompanyLimitReached
		}

		now := time.Now()
		company.CreatedAt = now
		company.UpdatedAt = now
		query := `
			INSERT INTO companies (user_id, name, website, industry, description, logo_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`
		return conn.QueryRow(ctx, query,
			company.UserID, company.Name, company.Website, company.Industry,
			company.Description, company.LogoURL, company.CreatedAt, company.UpdatedAt,
		).Scan(&company.ID)
	})
}

func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	company.UpdatedAt = time.Now()
	query := `
		UPDATE companies SET name = $2, website = $3, industry = $4, description = $5, logo_url = $6, updated_at = $7
		WHERE id = $1`
	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		company.ID, company.Name, company.Website, company.Industry,
		company.Description, company.LogoURL, company.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *companyRepo) Delete(ctx context.Context, id int64) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
