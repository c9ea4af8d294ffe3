package domain

import (
	"context"
	"time"
)

// Company is an employer organisation owned by a user
type Company struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Website     *string   `json:"website"`
	Industry    *string   `json:"industry"`
	Description *string   `json:"description"`
	LogoURL     *string   `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CompanyInput is the writable part of a company
type CompanyInput struct {
	Name        string  `json:"name" binding:"required,max=255,no_emoji"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Industry    *string `json:"industry" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,max=255"`
}

// CompanyRepository defines storage operations
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*Company, error)
	List(ctx context.Context) ([]Company, error)
	ListByUserID(ctx context.Context, userID int64) ([]Company, error)
	// CreateWithLimit serialises concurrent creations for the same owner and
	// fails with ErrCompanyLimitReached once the owner holds limit companies.
	CreateWithLimit(ctx context.Context, company *Company, limit int) error
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id int64) error
}

// CompanyUsecase defines business logic operations
type CompanyUsecase interface {
	List(ctx context.Context) ([]Company, error)
	ListMine(ctx context.Context, actor Actor) ([]Company, error)
	Get(ctx context.Context, id int64) (*Company, error)
	Create(ctx context.Context, actor Actor, input CompanyInput) (*Company, error)
	Update(ctx context.Context, actor Actor, id int64, input CompanyInput) (*Company, error)
	Delete(ctx context.Context, actor Actor, id int64) error
}
