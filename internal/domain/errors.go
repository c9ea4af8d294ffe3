package domain

import "errors"

// Workflow error taxonomy. Usecases wrap these in apperror.AppError so the
// HTTP layer gets a status code while callers can still match with errors.Is.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("actor is not allowed to perform this action")
	ErrInvalidState         = errors.New("operation not allowed in the current state")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrValidation           = errors.New("invalid input")
	ErrDuplicateApplication = errors.New("user already applied to this job offer")
	ErrCompanyLimitReached  = errors.New("company limit reached")
)
