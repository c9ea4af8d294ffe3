package domain

import (
	"context"
	"encoding/json"
	"time"
	"unicode/utf8"
)

// Interview is a meeting scheduled for an accepted application.
// A resume has at most one interview.
type Interview struct {
	ID            int64           `json:"id"`
	ResumeID      int64           `json:"resume_id"`
	ScheduledBy   int64           `json:"scheduled_by"`
	ScheduledTime time.Time       `json:"scheduled_time"`
	Location      *string         `json:"location"`
	Notes         *string         `json:"notes"`
	Status        InterviewStatus `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InterviewView joins an interview with its application context
type InterviewView struct {
	Interview
	JobOffer  JobOfferWithCompany `json:"job_offer"`
	Applicant User                `json:"applicant"`
}

// MaxLocationLength matches the interviews.location column
const MaxLocationLength = 255

// LocationTooLong reports whether loc exceeds MaxLocationLength characters
func LocationTooLong(loc *string) bool {
	return loc != nil && utf8.RuneCountInString(*loc) > MaxLocationLength
}

type ScheduleInterviewInput struct {
	ScheduledTime time.Time
	Location      *string
	Notes         *string
}

// OptionalString distinguishes an absent JSON field from an explicit null
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// UpdateInterviewInput is a partial update; nil or unset fields are left alone
type UpdateInterviewInput struct {
	ScheduledTime *time.Time
	Location      OptionalString
	Notes         OptionalString
	Status        *InterviewStatus
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id int64) (*Interview, error)
	GetByResumeID(ctx context.Context, resumeID int64) (*Interview, error)
	DeleteByResumeID(ctx context.Context, resumeID int64) error
	Update(ctx context.Context, interview *Interview) error
	Search(ctx context.Context, filter InterviewFilter) ([]InterviewView, int64, error)
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, actor Actor, resumeID int64, input ScheduleInterviewInput) (*Interview, error)
	Update(ctx context.Context, actor Actor, interviewID int64, input UpdateInterviewInput) (*Interview, error)
	GetForResume(ctx context.Context, actor Actor, resumeID int64) (*Interview, error)
	ListMine(ctx context.Context, actor Actor, filter InterviewFilter) (*Page[InterviewView], error)
}
