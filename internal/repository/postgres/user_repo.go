package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `u.id, u.name, u.email, u.phone, u.location, u.bio, u.settings, u.created_at, u.updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	user, err := scanUser(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET name = $2, phone = $3, location = $4, bio = $5, updated_at = $6
		WHERE id = $1
		RETURNING updated_at`
	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		user.ID, user.Name, user.Phone, user.Location, user.Bio, time.Now(),
	).Scan(&user.UpdatedAt)
	if err == pgx.ErrNoRows {
		return domain.ErrNotFound
	}
	return err
}

func (r *userRepo) UpdateSettings(ctx context.Context, id int64, settings domain.UserSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	query := `UPDATE users SET settings = $2::jsonb, updated_at = $3 WHERE id = $1`
	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, string(raw), time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanUser reads the userColumns projection
func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var rawSettings []byte
	if err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Location, &user.Bio,
		&rawSettings, &user.CreatedAt, &user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	settings, err := domain.ParseUserSettings(rawSettings)
	if err != nil {
		return nil, fmt.Errorf("user %d has malformed settings: %w", user.ID, err)
	}
	user.Settings = settings
	return &user, nil
}
