package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guilliammrst/enrollment-api/internal/api/handler"
	"github.com/guilliammrst/enrollment-api/internal/api/middleware"
	"github.com/guilliammrst/enrollment-api/internal/core/domain"
	"github.com/guilliammrst/enrollment-api/internal/core/ports"
	"github.com/guilliammrst/enrollment-api/internal/core/service"
)

// Dependencies carries everything the router needs. Mongo and Redis are nil
// when the memory driver is active or Redis is not configured; the readiness
// probe reports them as disabled in that case.
type Dependencies struct {
	Users       ports.UserRepository
	Courses     ports.CourseRepository
	Enrollments ports.EnrollmentRepository
	Lockout     ports.LoginLockout
	Mongo       *mongo.Database
	Redis       *redis.Client
	JWTSecret   string
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("enrollment"))

	// --- Services ---
	authService := service.NewAuthService(deps.Users, deps.Lockout, deps.JWTSecret, 24*time.Hour, deps.Logger)
	userService := service.NewUserService(deps.Users, deps.Logger)
	courseService := service.NewCourseService(deps.Courses, deps.Logger)
	enrollmentService := service.NewEnrollmentService(deps.Users, deps.Courses, deps.Enrollments, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	courseHandler := handler.NewCourseHandler(courseService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)

	// --- Guards ---
	authn := middleware.Auth(authService)
	admin := middleware.RBAC(domain.RoleAdmin)
	student := middleware.RBAC(domain.RoleStudent)

	// --- Routes ---
	e.POST("/auth/login", authHandler.Login)

	e.GET("/users", userHandler.List, authn, admin)
	e.POST("/users", userHandler.Create, authn, admin)

	e.GET("/courses", courseHandler.List, authn, admin)
	e.POST("/courses", courseHandler.Create, authn, admin)

	e.GET("/enrollments", enrollmentHandler.List, authn, admin)
	e.POST("/enrollments", enrollmentHandler.Create, authn, admin)

	e.PATCH("/sign-course", enrollmentHandler.Sign, authn, student)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
