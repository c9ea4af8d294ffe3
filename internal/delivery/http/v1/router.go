package v1

import (
	"net/http"

	"github.com/JawherBalti/HiredIn-Back/config"
	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/middleware"
	"github.com/JawherBalti/HiredIn-Back/internal/delivery/http/response"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/internal/usecase"
	"github.com/JawherBalti/HiredIn-Back/pkg/auth"
	"github.com/JawherBalti/HiredIn-Back/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	UserUC         domain.UserUsecase
	CompanyUC      domain.CompanyUsecase
	JobOfferUC     domain.JobOfferUsecase
	ApplicationUC  domain.ApplicationUsecase
	InterviewUC    domain.InterviewUsecase
	NotificationUC domain.NotificationUsecase
	HealthUC       usecase.HealthUsecase
	Subscriptions  Subscriptions
	JWKSProvider   *auth.Provider
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold, deps.Config.RateLimitWindow())))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	applyLimit := middleware.RateLimitMiddleware(middleware.ApplyRateLimitConfig(
		deps.Config.RateLimitApplyThreshold, deps.Config.RateLimitWindow()))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.UserUC))
	{
		NewUserHandler(protected, deps.UserUC)
		NewCompanyHandler(protected, deps.CompanyUC)
		NewJobOfferHandler(v1, protected, deps.JobOfferUC, deps.ApplicationUC, applyLimit)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewInterviewHandler(protected, deps.InterviewUC)
		NewNotificationHandler(protected, deps.NotificationUC, deps.Subscriptions)
	}

	return r
}
