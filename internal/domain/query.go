package domain

import (
	"fmt"
	"time"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PageRequest is a 1-based page selector
type PageRequest struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// Normalize clamps the request into the supported range
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is a generic paginated result
type Page[T any] struct {
	Data     []T   `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	LastPage int   `json:"last_page"`
}

func NewPage[T any](data []T, total int64, req PageRequest) Page[T] {
	if data == nil {
		data = []T{}
	}
	last := int(total) / req.PerPage
	if int(total)%req.PerPage > 0 {
		last++
	}
	if last == 0 {
		last = 1
	}
	return Page[T]{Data: data, Total: total, Page: req.Page, PerPage: req.PerPage, LastPage: last}
}

// DateBucket is a named, relative date window used by listing screens
type DateBucket string

const (
	BucketToday    DateBucket = "today"
	BucketWeek     DateBucket = "week"
	BucketMonth    DateBucket = "month"
	BucketUpcoming DateBucket = "upcoming"
	BucketPast     DateBucket = "past"
)

// DateRange is a half-open [From, To) window; nil bounds are unbounded
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// Range resolves the bucket relative to now. Week starts on Monday.
func (b DateBucket) Range(now time.Time) (DateRange, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch b {
	case "":
		return DateRange{}, nil
	case BucketToday:
		end := day.AddDate(0, 0, 1)
		return DateRange{From: &day, To: &end}, nil
	case BucketWeek:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		end := start.AddDate(0, 0, 7)
		return DateRange{From: &start, To: &end}, nil
	case BucketMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0)
		return DateRange{From: &start, To: &end}, nil
	case BucketUpcoming:
		from := now
		return DateRange{From: &from}, nil
	case BucketPast:
		to := now
		return DateRange{To: &to}, nil
	default:
		return DateRange{}, fmt.Errorf("%w: unknown date range %q", ErrValidation, string(b))
	}
}

// JobOfferFilter narrows the public job offer listing
type JobOfferFilter struct {
	Search     string
	Types      []string
	Industries []string
	Statuses   []string
	OwnerID    *int64
	Page       PageRequest
}

// ApplicationFilter narrows an applicant's own application listing
type ApplicationFilter struct {
	ApplicantID int64
	Search      string
	Types       []string
	Industries  []string
	Statuses    []string
	AppliedAt   DateRange
	Page        PageRequest
}

// InterviewRole selects which side of the interview the caller is on
type InterviewRole string

const (
	InterviewRoleApplicant InterviewRole = "applicant"
	InterviewRoleScheduler InterviewRole = "scheduler"
)

type InterviewFilter struct {
	UserID      int64
	Role        InterviewRole
	Search      string
	Statuses    []string
	ScheduledAt DateRange
	Page        PageRequest
}
