package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/response"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

type scheduleInterviewRequest struct {
	ScheduledTime time.Time `json:"scheduled_time" binding:"required,future"`
	Location      *string   `json:"location" binding:"omitempty,max=255"`
	Notes         *string   `json:"notes"`
}

// updateInterviewRequest leaves absent fields untouched; location and notes
// may be cleared with an explicit null
type updateInterviewRequest struct {
	ScheduledTime *time.Time              `json:"scheduled_time" binding:"omitempty,future"`
	Location      domain.OptionalString   `json:"location"`
	Notes         domain.OptionalString   `json:"notes"`
	Status        *domain.InterviewStatus `json:"status"`
}

func NewInterviewHandler(protected *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	protected.POST("/resumes/:id/interview", handler.Schedule)
	protected.GET("/resumes/:id/interview", handler.GetForResume)

	interviews := protected.Group("/interviews")
	{
		interviews.GET("", handler.ListMine)
		interviews.PUT("/:id", handler.Update)
	}
}

// Schedule godoc
// @Summary      Schedule an interview for an accepted application
// @Description  Replaces any interview already scheduled for the resume
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "Resume ID"
// @Param        request  body      scheduleInterviewRequest  true  "Interview"
// @Success      201  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /resumes/{id}/interview [post]
// @Security     BearerAuth
func (h *InterviewHandler) Schedule(c *gin.Context) {
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
	var req scheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	interview, err := h.interviewUC.Schedule(c.Request.Context(), a, id, domain.ScheduleInterviewInput{
		ScheduledTime: req.ScheduledTime,
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Interview scheduled successfully", interview)
}

func (h *InterviewHandler) GetForResume(c *gin.Context) {
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
	interview, err := h.interviewUC.GetForResume(c.Request.Context(), a, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview retrieved", interview)
}

// Update godoc
// @Summary      Update an interview
// @Description  Partial update. The applicant is notified when the time or location changes.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "Interview ID"
// @Param        request  body      updateInterviewRequest  true  "Changes"
// @Success      200  {object}  response.Response
// @Router       /interviews/{id} [put]
// @Security     BearerAuth
func (h *InterviewHandler) Update(c *gin.Context) {
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
	var req updateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	interview, err := h.interviewUC.Update(c.Request.Context(), a, id, domain.UpdateInterviewInput{
		ScheduledTime: req.ScheduledTime,
		Location:      req.Location,
		Notes:         req.Notes,
		Status:        req.Status,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Interview updated successfully", interview)
}

// ListMine godoc
// @Summary      List interviews
// @Description  role=applicant (default) lists interviews the caller attends, role=scheduler those they scheduled
// @Tags         interviews
// @Produce      json
// @Param        role      query  string    false  "applicant or scheduler"
// @Param        search    query  string    false  "Search over job title, company and applicant name"
// @Param        status    query  []string  false  "Interview statuses"
// @Param        range     query  string    false  "Scheduled date bucket"
// @Param        page      query  int       false  "Page"
// @Param        per_page  query  int       false  "Page size (1-100)"
// @Success      200  {object}  response.Response
// @Router       /interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListMine(c *gin.Context) {
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
	scheduled, err := dateRangeParam(c, time.Now())
	if err != nil {
		c.Error(err)
		return
	}
	result, err := h.interviewUC.ListMine(c.Request.Context(), a, domain.InterviewFilter{
		Role:        domain.InterviewRole(c.Query("role")),
		Search:      strings.TrimSpace(c.Query("search")),
		Statuses:    listParam(c, "status"),
		ScheduledAt: scheduled,
		Page:        page,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, "Interviews retrieved", result)
}
