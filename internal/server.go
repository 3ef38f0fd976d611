package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/portfolio/internal/auth"
	"github.com/2beens/portfolio/internal/cache"
	"github.com/2beens/portfolio/internal/config"
	"github.com/2beens/portfolio/internal/db"
	"github.com/2beens/portfolio/internal/gate"
	"github.com/2beens/portfolio/internal/login"
	"github.com/2beens/portfolio/internal/messages"
	"github.com/2beens/portfolio/internal/middleware"
	"github.com/2beens/portfolio/internal/misc"
	"github.com/2beens/portfolio/internal/pages"
	"github.com/2beens/portfolio/internal/projects"
	"github.com/2beens/portfolio/internal/skills"
	"github.com/2beens/portfolio/internal/telemetry/metrics"
	"github.com/2beens/portfolio/internal/telemetry/tracing"
)

type projectsStore interface {
	Add(ctx context.Context, project *projects.Project) error
	All(ctx context.Context) ([]*projects.Project, error)
	Update(ctx context.Context, project *projects.Project) error
	Delete(ctx context.Context, id int) error
}

type skillsStore interface {
	Add(ctx context.Context, skill *skills.Skill) error
	All(ctx context.Context) ([]*skills.Skill, error)
	Delete(ctx context.Context, id int) error
}

type messagesStore interface {
	Add(ctx context.Context, msg *messages.Message) error
	All(ctx context.Context) ([]*messages.Message, error)
	SetRead(ctx context.Context, id int, read bool) (*messages.Message, error)
	Delete(ctx context.Context, id int) error
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbManager   *db.Manager
	redisClient *redis.Client
	authService *auth.Service
	rateLimiter middleware.RequestRateLimiter
	listCache   cache.Cache
	versionInfo string

	projectsRepo projectsStore
	skillsRepo   skillsStore
	messagesRepo messagesStore

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     *config.Secrets
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	secrets := params.Secrets
	if cfg == nil || secrets == nil {
		return nil, errors.New("config and secrets are required")
	}
	if err := secrets.Validate(); err != nil {
		return nil, err
	}

	tokenManager, err := auth.NewTokenManager(secrets.JWTSecret, auth.DefaultTTL)
	if err != nil {
		return nil, fmt.Errorf("new token manager: %w", err)
	}
	authService := auth.NewService(&auth.Admin{
		Username: secrets.AdminUsername,
		Password: secrets.AdminPassword,
	}, tokenManager)

	dbManager := db.NewManager(db.ManagerParams{
		Conn: db.ConnParams{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			DBName:   cfg.PostgresDBName,
			User:     cfg.PostgresUser,
			Password: secrets.PostgresPassword,
		},
		TracingEnabled: secrets.HoneycombEnabled,
	})

	var collectors []prometheus.Collector
	// the pool is created lazily; if it cannot be created now, repos retry on first use
	if dbPool, err := dbManager.Pool(ctx); err != nil {
		log.Warnf("failed to create db pool: %s", err)
	} else {
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: secrets.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(secrets.HoneycombEnabled, "portfolio-backend", rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		dbManager:   dbManager,
		redisClient: rdb,
		authService: authService,
		rateLimiter: redis_rate.NewLimiter(rdb),
		listCache: cache.NewListCache(
			cfg.ListCacheSizeMB,
			time.Duration(cfg.ListCacheTTLSeconds)*time.Second,
		),

		projectsRepo: projects.NewRepo(dbManager),
		skillsRepo:   skills.NewRepo(dbManager),
		messagesRepo: messages.NewRepo(dbManager),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	adminOnly := middleware.RequireAdmin(s.authService)

	loginHandler := login.NewHandler(s.authService, s.config.IsProduction(), s.metricsManager)
	loginHandler.SetupRoutes(r, middleware.RateLimit(
		s.rateLimiter,
		"login",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	))

	projects.NewHandler(s.projectsRepo, s.listCache).SetupRoutes(r, adminOnly)
	skills.NewHandler(s.skillsRepo, s.listCache).SetupRoutes(r, adminOnly)
	messages.NewHandler(s.messagesRepo, s.metricsManager).SetupRoutes(
		r,
		middleware.RateLimit(
			s.rateLimiter,
			"contact",
			s.config.ContactRateLimitAllowedPerMin,
			s.metricsManager,
		),
		adminOnly,
	)

	pagesHandler, err := pages.NewHandler(s.projectsRepo, s.skillsRepo, s.messagesRepo)
	if err != nil {
		return nil, fmt.Errorf("pages handler: %w", err)
	}
	pagesHandler.SetupRoutes(r)

	misc.NewHandler(s.versionInfo).SetupRoutes(r)

	// all the rest - unhandled paths; registered so the middlewares (and the
	// access gate) still run for unknown /admin/... pages
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Name("unknown")

	accessGate := middleware.NewAccessGate(
		s.authService,
		s.config.IsProduction(),
		gate.Options{ClearStaleCookieOnLogin: s.config.ClearStaleCookieOnLogin},
		s.metricsManager,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(accessGate.Middleware())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.InstrumentMetricHandler(
			s.promRegistry,
			promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the resources behind them go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbManager != nil {
		log.Debugln("closing db pool ...")
		s.dbManager.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
