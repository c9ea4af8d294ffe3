package v1

import (
	"net/http"

	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/response"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	me := protected.Group("/me")
	{
		me.GET("", handler.Me)
		me.PUT("", handler.UpdateProfile)
		me.GET("/settings", handler.GetSettings)
		me.PUT("/settings", handler.UpdateSettings)
	}
}

// Me godoc
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /me [get]
// @Security     BearerAuth
func (h *UserHandler) Me(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	user, err := h.userUC.GetCurrentUser(c.Request.Context(), a)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", user)
}

// UpdateProfile godoc
// @Summary      Update the caller's profile
// @Description  Absent fields are kept; phone, location and bio accept null to clear them
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ProfileUpdate  true  "Profile fields"
// @Success      200      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /me [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	user, err := h.userUC.UpdateProfile(c.Request.Context(), a, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", user)
}

// GetSettings godoc
// @Summary      Get notification, privacy and preference settings
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /me/settings [get]
// @Security     BearerAuth
func (h *UserHandler) GetSettings(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	settings, err := h.userUC.GetSettings(c.Request.Context(), a)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Settings retrieved", settings)
}

// UpdateSettings godoc
// @Summary      Replace one or more settings sections
// @Description  Sections absent from the body keep their stored value
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        settings  body      domain.SettingsUpdate  true  "Settings sections"
// @Success      200       {object}  response.Response
// @Failure      422       {object}  response.Response
// @Router       /me/settings [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	a, err := actor(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	settings, err := h.userUC.UpdateSettings(c.Request.Context(), a, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Settings updated successfully", settings)
}
