package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/plinkhq/plink/internal/app/repository"
	"github.com/plinkhq/plink/internal/app/service"
	inthttp "github.com/plinkhq/plink/internal/http/handler"
	"github.com/plinkhq/plink/internal/http/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies bundles infrastructure dependencies required by the HTTP server.
type Dependencies struct {
	Logger           *zap.Logger
	Postgres         *pgxpool.Pool
	Redis            *redis.Client
	NATS             *nats.Conn
	JetStream        nats.JetStreamContext
	Users            repository.UserRepository
	Links            repository.LinkRepository
	Appearances      repository.AppearanceRepository
	Events           repository.AnalyticsEventRepository
	UsernameFilter   *service.UsernameFilter
	SessionKeyPrefix string
	CORSOrigin       string
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with default routes.
func New(deps Dependencies) *Server {
	app := fiber.New()

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerRoutes()
	return s
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	log := s.deps.Logger

	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Recovery(log))
	s.app.Use(middleware.Logger(log))
	s.app.Use(middleware.CORS(s.deps.CORSOrigin))

	linkService := service.NewLinkService(s.deps.Links)
	analyticsService := service.NewAnalyticsService(s.deps.Events, s.deps.Links)
	appearanceService := service.NewAppearanceService(s.deps.Appearances)
	userService := service.NewUserService(s.deps.Users, s.deps.UsernameFilter)

	profileDeps := service.ProfileDeps{
		Users:       s.deps.Users,
		Links:       s.deps.Links,
		Appearances: s.deps.Appearances,
		Filter:      s.deps.UsernameFilter,
		Logger:      log,
	}
	// Views stays a nil interface when JetStream is absent; a typed-nil
	// publisher would slip past the service's nil check.
	if s.deps.JetStream != nil {
		profileDeps.Views = service.NewViewPublisher(s.deps.JetStream)
	}
	profileService := service.NewProfileService(profileDeps)

	healthHandler := inthttp.NewHealthHandler(inthttp.HealthDeps{
		Logger:   log,
		Postgres: s.deps.Postgres,
		Redis:    s.deps.Redis,
	})
	healthHandler.Register(s.app)

	profileHandler := inthttp.NewProfileHandler(inthttp.ProfileDeps{
		Logger:         log,
		ProfileService: profileService,
	})
	profileHandler.Register(s.app)

	// Session auth attaches per route: the click route is service-to-service
	// and carries no principal, everything else under /api requires one.
	api := s.app.Group("/api")
	auth := middleware.Auth(s.deps.Redis, s.deps.SessionKeyPrefix, log)

	analyticsHandler := inthttp.NewAnalyticsHandler(inthttp.AnalyticsDeps{
		Logger:           log,
		AnalyticsService: analyticsService,
	})
	analyticsHandler.Register(api, auth)

	linkHandler := inthttp.NewLinkHandler(inthttp.LinkDeps{
		Logger:      log,
		LinkService: linkService,
	})
	linkHandler.Register(api, auth)

	appearanceHandler := inthttp.NewAppearanceHandler(inthttp.AppearanceDeps{
		Logger:            log,
		AppearanceService: appearanceService,
	})
	appearanceHandler.Register(api, auth)

	userHandler := inthttp.NewUserHandler(inthttp.UserDeps{
		Logger:      log,
		UserService: userService,
	})
	userHandler.Register(api, auth)
}
