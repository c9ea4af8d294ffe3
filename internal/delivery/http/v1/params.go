package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/middleware"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// pathID parses a positive integer path parameter
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NotFound("Resource not found")
	}
	return id, nil
}

func actor(c *gin.Context) (domain.Actor, error) {
	a, ok := middleware.CurrentActor(c)
	if !ok {
		return domain.Actor{}, apperror.Unauthorized("User not authenticated")
	}
	return a, nil
}

// listParam accepts repeated (?type=a&type=b), bracketed (?type[]=a) and
// comma separated (?type=a,b) values
func listParam(c *gin.Context, name string) []string {
	raw := append(c.QueryArray(name), c.QueryArray(name+"[]")...)
	var values []string
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

func pageParam(c *gin.Context) (domain.PageRequest, error) {
	var p domain.PageRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		return p, apperror.Unprocessable("page and per_page must be integers")
	}
	if c.Query("per_page") != "" && (p.PerPage < 1 || p.PerPage > domain.MaxPerPage) {
		return p, apperror.Unprocessable("per_page must be between 1 and 100")
	}
	return p.Normalize(), nil
}

// parseTime accepts RFC3339 timestamps and plain dates
func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// dateRangeParam resolves ?range=<bucket> or an explicit ?from=&to= window.
// A plain to date includes that whole day.
func dateRangeParam(c *gin.Context, now time.Time) (domain.DateRange, error) {
	if bucket := c.Query("range"); bucket != "" {
		r, err := domain.DateBucket(bucket).Range(now)
		if err != nil {
			return r, apperror.Wrap(err, http.StatusUnprocessableEntity, "range must be one of today, week, month, upcoming, past")
		}
		return r, nil
	}

	var r domain.DateRange
	if from := c.Query("from"); from != "" {
		t, err := parseTime(from)
		if err != nil {
			return r, apperror.Unprocessable("from must be a date (YYYY-MM-DD) or RFC3339 timestamp")
		}
		r.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := parseTime(to)
		if err != nil {
			return r, apperror.Unprocessable("to must be a date (YYYY-MM-DD) or RFC3339 timestamp")
		}
		if len(to) == len("2006-01-02") {
			t = t.AddDate(0, 0, 1)
		}
		r.To = &t
	}
	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return r, apperror.Unprocessable("from must be before to")
	}
	return r, nil
}

// bindError keeps validator errors for the error middleware to format and
// turns malformed payloads into a 400
func bindError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return apperror.BadRequest("Invalid request body")
}
