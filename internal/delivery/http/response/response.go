package response

import (
	"net/http"
	"strconv"

	"github.com/JawherBalti/HiredIn-Back/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Paginated sends one page of a listing. The page metadata travels in the
// body and the total is mirrored in X-Total-Count.
func Paginated[T any](c *gin.Context, message string, page *domain.Page[T]) {
	if page == nil {
		page = &domain.Page[T]{Data: []T{}, Page: 1, PerPage: domain.DefaultPerPage, LastPage: 1}
	}
	c.Header("X-Total-Count", strconv.FormatInt(page.Total, 10))
	Success(c, http.StatusOK, message, page)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}
