package domain

import (
	"context"
	"io"
	"time"
)

// Resume is one user's application to one job offer
type Resume struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	JobOfferID  int64        `json:"job_offer_id"`
	FilePath    string       `json:"-"`
	FileName    string       `json:"file_name"`
	CoverLetter *string      `json:"cover_letter,omitempty"`
	Status      ResumeStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ResumeView is a resume with its related records for listing screens
type ResumeView struct {
	Resume
	Applicant *User                `json:"user,omitempty"`
	JobOffer  *JobOfferWithCompany `json:"job_offer,omitempty"`
	Interview *Interview           `json:"interview"`
}

// ResumeUpload is the binary submitted with an application
type ResumeUpload struct {
	File     io.Reader
	FileName string
	Size     int64
}

// ResumeRepository defines data access methods for applications
type ResumeRepository interface {
	// Create fails with ErrDuplicateApplication when the (user, job offer) pair exists
	Create(ctx context.Context, resume *Resume) error
	GetByID(ctx context.Context, id int64) (*Resume, error)
	// GetByIDForUpdate must run inside a transaction
	GetByIDForUpdate(ctx context.Context, id int64) (*Resume, error)
	Exists(ctx context.Context, jobOfferID, userID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status ResumeStatus) error
	ListByJobOffer(ctx context.Context, jobOfferID int64) ([]ResumeView, error)
	SearchByApplicant(ctx context.Context, filter ApplicationFilter) ([]ResumeView, int64, error)
}

// ApplicationUsecase drives the application workflow
type ApplicationUsecase interface {
	// Applicant operations
	Submit(ctx context.Context, actor Actor, jobOfferID int64, upload ResumeUpload, coverLetter *string) (*Resume, error)
	ListMine(ctx context.Context, actor Actor, filter ApplicationFilter) (*Page[ResumeView], error)

	// Poster operations
	ChangeStatus(ctx context.Context, actor Actor, resumeID int64, status ResumeStatus) (*Resume, error)
	ListForJobOffer(ctx context.Context, actor Actor, jobOfferID int64) ([]ResumeView, error)
	ExportForJobOffer(ctx context.Context, actor Actor, jobOfferID int64) ([]byte, string, error)

	// Either side
	DownloadURL(ctx context.Context, actor Actor, resumeID int64) (string, error)
}
