package usecase

import (
	"errors"
	"net/http"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/apperror"
)

// statusFor maps the domain error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateApplication):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrCompanyLimitReached):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail wraps a domain sentinel into an AppError carrying message. Anything
// outside the taxonomy becomes an internal error and message is dropped.
func fail(err error, message string) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		return apperror.Internal(err)
	}
	return apperror.Wrap(err, code, message)
}

func forbidden(message string) error {
	return apperror.Wrap(domain.ErrUnauthorized, http.StatusForbidden, message)
}

func invalid(message string) error {
	return apperror.Wrap(domain.ErrValidation, http.StatusUnprocessableEntity, message)
}
