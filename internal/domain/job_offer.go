package domain

import (
	"context"
	"time"
)

// Job offer statuses as accepted by the posting form
const (
	JobOfferStatusApplied   = "applied"
	JobOfferStatusInterview = "interview"
	JobOfferStatusOffer     = "offer"
)

type JobOffer struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	CompanyID   int64      `json:"company_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Type        *string    `json:"type"`
	Deadline    *time.Time `json:"deadline"`
	Salary      *string    `json:"salary"`
	Location    *string    `json:"location"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// JobOfferWithCompany extends JobOffer with its company
type JobOfferWithCompany struct {
	JobOffer
	Company Company `json:"company"`
}

// JobOfferInput is the writable part of a job offer
type JobOfferInput struct {
	CompanyID   int64      `json:"company_id" binding:"required,gt=0"`
	Title       string     `json:"title" binding:"required,max=255,no_emoji"`
	Description *string    `json:"description"`
	Status      string     `json:"status" binding:"required,oneof=applied interview offer"`
	Type        *string    `json:"type" binding:"omitempty,job_type"`
	Deadline    *time.Time `json:"deadline"`
	Salary      *string    `json:"salary" binding:"omitempty,max=255"`
	Location    *string    `json:"location"`
}

type JobOfferRepository interface {
	Create(ctx context.Context, offer *JobOffer) error
	GetByID(ctx context.Context, id int64) (*JobOffer, error)
	GetByIDWithCompany(ctx context.Context, id int64) (*JobOfferWithCompany, error)
	Search(ctx context.Context, filter JobOfferFilter) ([]JobOfferWithCompany, int64, error)
	Recent(ctx context.Context, limit int) ([]JobOfferWithCompany, error)
	Update(ctx context.Context, offer *JobOffer) error
	Delete(ctx context.Context, id int64) error
}

type JobOfferUsecase interface {
	List(ctx context.Context, filter JobOfferFilter) (*Page[JobOfferWithCompany], error)
	ListMine(ctx context.Context, actor Actor, filter JobOfferFilter) (*Page[JobOfferWithCompany], error)
	Recent(ctx context.Context) ([]JobOfferWithCompany, error)
	Get(ctx context.Context, id int64) (*JobOfferWithCompany, error)
	Create(ctx context.Context, actor Actor, input JobOfferInput) (*JobOfferWithCompany, error)
	Update(ctx context.Context, actor Actor, id int64, input JobOfferInput) (*JobOfferWithCompany, error)
	Delete(ctx context.Context, actor Actor, id int64) error
}
