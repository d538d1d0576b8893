package router

import (
	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/container"
	pginfra "github.com/oksasatya/devcamper-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/internal/router/modules"
)

// Services bundles the application services built from the container.
type Services struct {
	Auth      *application.AuthService
	Users     *application.UserService
	Bootcamps *application.BootcampService
	Courses   *application.CourseService
	Reviews   *application.ReviewService
}

// BuildServices wires postgres repositories and the registered collaborators
// into services. The recomputer is stored back into the container so the
// process can drain it on shutdown.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	bootcamps := pginfra.NewBootcampRepository(pool)
	courses := pginfra.NewCourseRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)

	rc := application.NewRecomputer(bootcamps, courses, reviews, logger, cfg.RecomputeTimeout)
	container.SetRecomputer(rc)

	links := application.Links{AppName: cfg.AppName, CompanyName: cfg.CompanyName, BaseURL: cfg.PublicBaseURL}
	return Services{
		Auth:      application.NewAuthService(users, container.GetJWT(), container.GetTokens(), container.GetMail(), links, logger),
		Users:     application.NewUserService(users),
		Bootcamps: application.NewBootcampService(bootcamps, container.GetGeocoder(), container.GetFiles(), container.GetSearch(), logger, cfg.MaxFileUpload),
		Courses:   application.NewCourseService(courses, bootcamps, rc),
		Reviews:   application.NewReviewService(reviews, bootcamps, rc),
	}
}

// InitModules builds every feature module and adds it to the registry.
// Call once during startup, after the container is filled.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	svc := BuildServices()
	protect := middleware.Protect(container.GetJWT(), pginfra.NewUserRepository(container.GetPGPool()))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, cfg.CookieDomain, cfg.CookieSecure), protect))
	r.Add(modules.NewBootcampModule(handlers.NewBootcampHandler(svc.Bootcamps), protect))
	r.Add(modules.NewCourseModule(handlers.NewCourseHandler(svc.Courses), protect))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(svc.Reviews), protect))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users), protect))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
