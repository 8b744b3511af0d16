package v1

import (
	"net/http"
	"time"

	"hushh-site-backend/config"
	"hushh-site-backend/internal/delivery/http/middleware"
	"hushh-site-backend/internal/delivery/http/response"
	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC    domain.ContactUsecase
	DraftUC      domain.DraftUsecase
	AdminUC      domain.AdminUsecase
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	// Coarse per-IP ceiling across the whole API; the contact and upload
	// groups below carry their own tighter buckets on top of it
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	v1 := r.Group("/v1")
	v1.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes, rate limited per IP. Uploads get their own tighter
	// bucket so heavy media traffic cannot starve plain form edits.
	public := v1.Group("")
	public.Use(middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(deps.Config.RateLimitContactThreshold, window)))

	uploads := v1.Group("")
	uploads.Use(middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(deps.Config.RateLimitUploadThreshold, window)))

	NewContactHandler(public, uploads, deps.ContactUC, deps.DraftUC)
	NewRecordingHandler(uploads, deps.DraftUC)

	// Back-office routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(deps.JWKSProvider, deps.Config))
	{
		NewAdminHandler(admin, deps.AdminUC)
	}

	return r
}
