package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/response"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type JobOfferHandler struct {
	jobOfferUC    domain.JobOfferUsecase
	applicationUC domain.ApplicationUsecase
}

// NewJobOfferHandler mounts the job offer routes. Browsing is public; applying
// goes through applyLimit.
func NewJobOfferHandler(public, protected *gin.RouterGroup, jobOfferUC domain.JobOfferUsecase, applicationUC domain.ApplicationUsecase, applyLimit gin.HandlerFunc) {
	handler := &JobOfferHandler{jobOfferUC: jobOfferUC, applicationUC: applicationUC}

	offers := public.Group("/job-offers")
	{
		offers.GET("", handler.List)
		offers.GET("/recent", handler.Recent)
		offers.GET("/:id", handler.Get)
	}

	mine := protected.Group("/job-offers")
	{
		mine.GET("/mine", handler.ListMine)
		mine.POST("", handler.Create)
		mine.PUT("/:id", handler.Update)
		mine.DELETE("/:id", handler.Delete)

		mine.POST("/:id/apply", applyLimit, handler.Apply)
		mine.GET("/:id/applications", handler.Applications)
		mine.GET("/:id/applications/export", handler.ExportApplications)
	}
}

func jobOfferFilter(c *gin.Context) (domain.JobOfferFilter, error) {
	page, err := pageParam(c)
	if err != nil {
		return domain.JobOfferFilter{}, err
	}
	return domain.JobOfferFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		Types:      listParam(c, "type"),
		Industries: listParam(c, "industry"),
		Statuses:   listParam(c, "status"),
		Page:       page,
	}, nil
}

// List godoc
// @Summary      Browse job offers
// @Description  Paginated listing with free text search over title and company name
// @Tags         job-offers
// @Produce      json
// @Param        search    query     string  false  "Search text"
// @Param        type      query     []string  false  "Job types"
// @Param        industry  query     []string  false  "Company industries"
// @Param        status    query     []string  false  "Offer statuses"
// @Param        page      query     int     false  "Page"
// @Param        per_page  query     int     false  "Page size (1-100)"
// @Success      200  {object}  response.Response
// @Router       /job-offers [get]
func (h *JobOfferHandler) List(c *gin.Context) {
	filter, err := jobOfferFilter(c)
	if err != nil {
		c.Error(err)
		return
	}
	page, err := h.jobOfferUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, "Job offers retrieved", page)
}

func (h *JobOfferHandler) Recent(c *gin.Context) {
	offers, err := h.jobOfferUC.Recent(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recent job offers retrieved", offers)
}

func (h *JobOfferHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	offer, err := h.jobOfferUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job offer retrieved", offer)
}

// ListMine godoc
// @Summary      List the caller's job offers
// @Tags         job-offers
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /job-offers/mine [get]
// @Security     BearerAuth
func (h *JobOfferHandler) ListMine(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	filter, err := jobOfferFilter(c)
	if err != nil {
		c.Error(err)
		return
	}
	page, err := h.jobOfferUC.ListMine(c.Request.Context(), a, filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, "Job offers retrieved", page)
}

// Create godoc
// @Summary      Post a job offer
// @Tags         job-offers
// @Accept       json
// @Produce      json
// @Param        offer  body      domain.JobOfferInput  true  "Job offer"
// @Success      201    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      422    {object}  response.Response
// @Router       /job-offers [post]
// @Security     BearerAuth
func (h *JobOfferHandler) Create(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.JobOfferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	offer, err := h.jobOfferUC.Create(c.Request.Context(), a, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job offer created successfully", offer)
}

func (h *JobOfferHandler) Update(c *gin.Context) {
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
	var req domain.JobOfferInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	offer, err := h.jobOfferUC.Update(c.Request.Context(), a, id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job offer updated successfully", offer)
}

func (h *JobOfferHandler) Delete(c *gin.Context) {
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
	if err := h.jobOfferUC.Delete(c.Request.Context(), a, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job offer deleted successfully", nil)
}

// Apply godoc
// @Summary      Apply to a job offer
// @Description  Multipart upload of a PDF, DOC or DOCX resume with an optional cover letter
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        id            path      int     true   "Job offer ID"
// @Param        resume        formData  file    true   "Resume file"
// @Param        cover_letter  formData  string  false  "Cover letter"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /job-offers/{id}/apply [post]
// @Security     BearerAuth
func (h *JobOfferHandler) Apply(c *gin.Context) {
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

	header, err := c.FormFile("resume")
	if err != nil {
		c.Error(apperror.Unprocessable("The resume field is required."))
		return
	}
	file, err := header.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Could not read the uploaded resume"))
		return
	}
	defer file.Close()

	var coverLetter *string
	if cl := strings.TrimSpace(c.PostForm("cover_letter")); cl != "" {
		coverLetter = &cl
	}

	resume, err := h.applicationUC.Submit(c.Request.Context(), a, id, domain.ResumeUpload{
		File:     file,
		FileName: header.Filename,
		Size:     header.Size,
	}, coverLetter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully", resume)
}

// Applications godoc
// @Summary      List applications received for a job offer
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job offer ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /job-offers/{id}/applications [get]
// @Security     BearerAuth
func (h *JobOfferHandler) Applications(c *gin.Context) {
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
	views, err := h.applicationUC.ListForJobOffer(c.Request.Context(), a, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", views)
}

// ExportApplications godoc
// @Summary      Download the applicants of a job offer as a spreadsheet
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  int  true  "Job offer ID"
// @Success      200  {file}  file
// @Router       /job-offers/{id}/applications/export [get]
// @Security     BearerAuth
func (h *JobOfferHandler) ExportApplications(c *gin.Context) {
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
	data, filename, err := h.applicationUC.ExportForJobOffer(c.Request.Context(), a, id)
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
