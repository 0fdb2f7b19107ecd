package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/uniportal/uni-ui-api/config"
	redisadapter "github.com/uniportal/uni-ui-api/internal/adapters/redis"
	"github.com/uniportal/uni-ui-api/internal/service"
	"github.com/uniportal/uni-ui-api/internal/session"
)

// ServiceContainer holds all constructed application services.
type ServiceContainer struct {
	Auth        *service.AuthService
	Admins      *service.AdminsService
	Students    *service.StudentsService
	Doctors     *service.DoctorsService
	Assistants  *service.AssistantsService
	Courses     *service.CoursesService
	Departments *service.DepartmentsService
	Portal      *service.StudentPortalService
	Grades      *service.GradebookService
}

// ServiceDeps contains dependencies for building the service layer.
type ServiceDeps struct {
	Config   *config.AppConfig
	Sessions session.Store
	Logger   *slog.Logger
}

// NewSessionStore builds the configured session store. The Redis client may
// be nil when the memory backend is selected.
//
//nolint:ireturn // the backend is chosen at runtime from configuration.
func NewSessionStore(cfg *config.AppConfig, client redis.UniversalClient, logger *slog.Logger) (session.Store, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendMemory:
		if logger != nil {
			logger.Warn("using in-memory session store; sessions will not survive restarts")
		}
		return session.NewMemoryStore(cfg.Session.TTL), nil
	case config.SessionBackendRedis:
		if client == nil {
			return nil, fmt.Errorf("session backend %q requires a redis connection", cfg.Session.Backend)
		}
		return redisadapter.NewSessionStore(client, redisadapter.Options{
			TTL: cfg.Session.TTL,
		}), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

// NewServices constructs the full service layer on top of one shared
// university API client factory.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clients, err := service.NewAPIClientFactory(service.APIClientFactoryOptions{
		BaseURL:  deps.Config.API.BaseURL,
		Timeout:  deps.Config.API.Timeout,
		Sessions: deps.Sessions,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build api client factory: %w", err)
	}

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Sessions: deps.Sessions,
			API:      clients.Plain(),
			Logger:   logger,
		}),
		Admins:      service.NewAdminsService(clients),
		Students:    service.NewStudentsService(clients),
		Doctors:     service.NewDoctorsService(clients),
		Assistants:  service.NewAssistantsService(clients),
		Courses:     service.NewCoursesService(clients),
		Departments: service.NewDepartmentsService(clients),
		Portal: service.NewStudentPortalService(service.StudentPortalServiceOptions{
			Clients: clients,
			Logger:  logger,
		}),
		Grades: service.NewGradebookService(service.GradebookServiceOptions{
			Clients: clients,
			Logger:  logger,
		}),
	}, nil
}
