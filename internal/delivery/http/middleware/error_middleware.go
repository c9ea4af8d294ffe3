package middleware

import (
	"errors"
	"net/http"

	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/response"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/apperror"
	"github.com/JawherBalti/HiredIn-Back/pkg/logger"
	"github.com/JawherBalti/HiredIn-Back/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// sentinelStatus covers domain errors that reach the handler unwrapped
var sentinelStatus = []struct {
	err     error
	code    int
	message string
}{
	{domain.ErrNotFound, http.StatusNotFound, "Resource not found"},
	{domain.ErrUnauthorized, http.StatusForbidden, "You are not allowed to perform this action"},
	{domain.ErrDuplicateApplication, http.StatusConflict, "You have already applied for this job offer."},
	{domain.ErrInvalidState, http.StatusUnprocessableEntity, "Operation not allowed in the current state"},
	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, "Status transition not allowed"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "The given data was invalid."},
	{domain.ErrCompanyLimitReached, http.StatusUnprocessableEntity, "Company limit reached"},
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.Error(c, http.StatusUnprocessableEntity, "The given data was invalid.", validation.FormatValidationErrors(err))
			return
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logInternal(c, appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		for _, s := range sentinelStatus {
			if errors.Is(err, s.err) {
				response.Error(c, s.code, s.message, nil)
				return
			}
		}

		// never expose internal error details to clients
		logInternal(c, err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

func logInternal(c *gin.Context, err error) {
	logger.Log.Error("Internal Server Error",
		"error", err,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"request_id", c.GetString(string(domain.KeyRequestID)),
	)
}
