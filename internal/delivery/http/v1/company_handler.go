package v1

import (
	"net/http"

	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/response"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(protected *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	companies := protected.Group("/companies")
	{
		companies.GET("", handler.List)
		companies.GET("/mine", handler.ListMine)
		companies.POST("", handler.Create)
		companies.GET("/:id", handler.Get)
		companies.PUT("/:id", handler.Update)
		companies.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List all companies
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /companies [get]
// @Security     BearerAuth
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Companies retrieved", companies)
}

// ListMine godoc
// @Summary      List the caller's companies
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /companies/mine [get]
// @Security     BearerAuth
func (h *CompanyHandler) ListMine(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	companies, err := h.companyUC.ListMine(c.Request.Context(), a)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Companies retrieved", companies)
}

// Create godoc
// @Summary      Register a company
// @Description  A user may own a limited number of companies
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company  body      domain.CompanyInput  true  "Company"
// @Success      201      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /companies [post]
// @Security     BearerAuth
func (h *CompanyHandler) Create(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.CompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	company, err := h.companyUC.Create(c.Request.Context(), a, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Company created successfully", company)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	company, err := h.companyUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company retrieved", company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
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
	var req domain.CompanyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	company, err := h.companyUC.Update(c.Request.Context(), a, id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company updated successfully", company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
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
	if err := h.companyUC.Delete(c.Request.Context(), a, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company deleted successfully", nil)
}
