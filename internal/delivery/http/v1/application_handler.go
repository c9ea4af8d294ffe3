package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/response"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

type changeStatusRequest struct {
	Status domain.ResumeStatus `json:"status" binding:"required"`
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	protected.GET("/applications", handler.ListMine)

	resumes := protected.Group("/resumes")
	{
		resumes.PATCH("/:id/status", handler.ChangeStatus)
		resumes.GET("/:id/download", handler.Download)
	}
}

// ListMine godoc
// @Summary      List the caller's applications
// @Description  Filters combine with AND. range accepts today, week, month, upcoming or past.
// @Tags         applications
// @Produce      json
// @Param        search    query     string    false  "Search over job title and company name"
// @Param        type      query     []string  false  "Job types"
// @Param        industry  query     []string  false  "Company industries"
// @Param        status    query     []string  false  "Application statuses"
// @Param        range     query     string    false  "Applied date bucket"
// @Param        from      query     string    false  "Applied on or after"
// @Param        to        query     string    false  "Applied before (a plain date includes the day)"
// @Param        page      query     int       false  "Page"
// @Param        per_page  query     int       false  "Page size (1-100)"
// @Success      200  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	page, err := pageParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	applied, err := dateRangeParam(c, time.Now())
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.applicationUC.ListMine(c.Request.Context(), a, domain.ApplicationFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		Types:      listParam(c, "type"),
		Industries: listParam(c, "industry"),
		Statuses:   listParam(c, "status"),
		AppliedAt:  applied,
		Page:       page,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, "Applications retrieved", result)
}

// ChangeStatus godoc
// @Summary      Change the status of an application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Resume ID"
// @Param        request  body      changeStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /resumes/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) ChangeStatus(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	resume, err := h.applicationUC.ChangeStatus(c.Request.Context(), a, id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated successfully", resume)
}

// Download redirects to a short-lived link for the resume file
func (h *ApplicationHandler) Download(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	url, err := h.applicationUC.DownloadURL(c.Request.Context(), a, id)
	if err != nil {
		c.Error(err)
		return
	}
	if c.Query("redirect") == "false" {
		response.Success(c, http.StatusOK, "Download link created", gin.H{"url": url})
		return
	}
	c.Redirect(http.StatusFound, url)
}
