package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devlink/devlink-api/internal/api/handler"
	"github.com/devlink/devlink-api/internal/api/middleware"
	"github.com/devlink/devlink-api/internal/core/ports"
)

// Dependencies carries everything the router needs. Services are built
// in main so the activity pipeline and repositories share one wiring
// point.
type Dependencies struct {
	AuthService    ports.AuthService
	ProfileService ports.ProfileService
	PostService    ports.PostService
	Tokens         ports.TokenService
	Mongo          *mongo.Database
	Redis          *redis.Client
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes
// registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("devlink"))

	authRequired := middleware.Auth(deps.Tokens, deps.Logger)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	e.POST("/users", authHandler.Register)
	e.POST("/auth", authHandler.Login)
	e.GET("/auth", authHandler.Current, authRequired)

	// --- Profile routes ---
	profileHandler := handler.NewProfileHandler(deps.ProfileService)
	e.GET("/profile", profileHandler.List)
	e.GET("/profile/user/:user_id", profileHandler.GetByUser)
	e.GET("/profile/me", profileHandler.Me, authRequired)
	e.POST("/profile", profileHandler.Update, authRequired)
	e.DELETE("/profile", profileHandler.Delete, authRequired)
	e.PUT("/profile/experience", profileHandler.AddExperience, authRequired)
	e.DELETE("/profile/experience/:id", profileHandler.RemoveExperience, authRequired)
	e.PUT("/profile/education", profileHandler.AddEducation, authRequired)
	e.DELETE("/profile/education/:id", profileHandler.RemoveEducation, authRequired)

	// --- Post routes ---
	postHandler := handler.NewPostHandler(deps.PostService)
	posts := e.Group("/posts", authRequired)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", postHandler.Create)
	posts.DELETE("/:id", postHandler.Delete)
	posts.PUT("/like/:id", postHandler.Like)
	posts.PUT("/unlike/:id", postHandler.Unlike)
	posts.POST("/comment/:id", postHandler.AddComment)
	posts.DELETE("/comment/:post_id/:comment_id", postHandler.RemoveComment)

	// --- Observability and docs (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
