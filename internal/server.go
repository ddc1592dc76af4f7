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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/gymquest/internal/achievements"
	"github.com/2beens/gymquest/internal/auth"
	"github.com/2beens/gymquest/internal/config"
	"github.com/2beens/gymquest/internal/db"
	"github.com/2beens/gymquest/internal/exercises"
	"github.com/2beens/gymquest/internal/leaderboard"
	"github.com/2beens/gymquest/internal/middleware"
	"github.com/2beens/gymquest/internal/progress"
	"github.com/2beens/gymquest/internal/rewards"
	"github.com/2beens/gymquest/internal/telemetry/metrics"
	"github.com/2beens/gymquest/internal/telemetry/tracing"
	"github.com/2beens/gymquest/internal/users"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	loginChecker *auth.LoginChecker
	authService  *auth.Service

	usersService    *users.Service
	catalog         *exercises.Catalog
	ranker          *leaderboard.Ranker
	leaderboardRepo *leaderboard.Repo
	refresher       *leaderboard.Refresher
	cron            *cron.Cron

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	AdminUsername           string
	AdminEmail              string
	AdminPasswordHash       string
	RedisPassword           string
	DBPassword              string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbParams := db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.DBPassword,
		SSLMode:        params.Config.PostgresSSLMode,
		MaxConns:       params.Config.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	}

	if params.Config.RunDBMigrations {
		version, err := db.Migrate(db.ConnString(dbParams))
		if err != nil {
			return nil, fmt.Errorf("migrate db: %w", err)
		}
		log.Debugf("db schema at version %d", version)
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymquest-backend", rdb)
	if err != nil {
		return nil, err
	}

	sessionTTL := params.Config.SessionTTL.Duration
	ranker := leaderboard.NewRanker(rdb)
	leaderboardRepo := leaderboard.NewRepo(dbPool)

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		redisClient: rdb,

		authService:  auth.NewAuthService(sessionTTL, rdb),
		loginChecker: auth.NewLoginChecker(sessionTTL, rdb),

		usersService:    users.NewService(users.NewRepo(dbPool), ranker, metricsManager),
		catalog:         exercises.NewCatalog(exercises.NewRepo(dbPool), params.Config.CatalogCacheTTL.Duration),
		ranker:          ranker,
		leaderboardRepo: leaderboardRepo,
		refresher:       leaderboard.NewRefresher(leaderboardRepo, ranker, metricsManager),
		cron:            cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if params.AdminUsername != "" {
		if err := s.usersService.EnsureAdmin(ctx, params.AdminUsername, params.AdminEmail, params.AdminPasswordHash); err != nil {
			log.Errorf("failed to ensure admin account: %s", err)
		}
	} else {
		log.Warnln("admin account not configured")
	}

	if params.VersionInfo != "" {
		log.Debugf("server version: %s", params.VersionInfo)
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymquest-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	rateLimit := func(routeName string) func(http.Handler) http.Handler {
		return middleware.RateLimit(reqRateLimiter, routeName, s.config.LoginRateLimitAllowedPerMin, s.metricsManager)
	}

	authHandler := auth.NewHandler(s.usersService, s.authService, s.metricsManager, s.config.CookieSecure)
	authHandler.SetupRoutes(r, rateLimit("login"))

	achievementsRepo := achievements.NewRepo(s.dbPool)
	evaluator := achievements.NewEvaluator(achievementsRepo, s.metricsManager)

	usersHandler := users.NewHandler(s.usersService, achievementsRepo, s.authService, s.config.CookieSecure)
	usersHandler.SetupRoutes(r, rateLimit("signup"))

	progressRepo := progress.NewRepo(s.dbPool)
	exercisesHandler := exercises.NewHandler(s.catalog, progressRepo)
	exercisesHandler.SetupRoutes(r)

	progressHandler := progress.NewHandler(
		progress.NewService(s.catalog, progressRepo, s.ranker, evaluator, s.metricsManager),
		progressRepo,
	)
	progressHandler.SetupRoutes(r)

	leaderboardHandler := leaderboard.NewHandler(
		leaderboard.NewBoard(s.ranker, s.leaderboardRepo),
		s.config.LeaderboardDefaultLimit,
	)
	leaderboardHandler.SetupRoutes(r)

	achievementsHandler := achievements.NewHandler(evaluator, achievementsRepo)
	achievementsHandler.SetupRoutes(r)

	rewardsHandler := rewards.NewHandler(
		rewards.NewService(rewards.NewRepo(s.dbPool), s.metricsManager),
	)
	rewardsHandler.SetupRoutes(r, middleware.AdminOnly(s.usersService))

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) metricsRouter() *mux.Router {
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	return metricsRouter
}

// startJobs schedules the periodic leaderboard refresh and the sessions cleanup.
func (s *Server) startJobs(ctx context.Context) error {
	if err := s.refresher.Start(ctx, s.config.LeaderboardRefreshSpec); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(s.config.SessionsCleanupSpec, func() {
		cleaned := s.authService.ScanAndClean(ctx)
		log.Debugf("sessions cleanup done, removed: %d", cleaned)
	}); err != nil {
		return fmt.Errorf("add sessions cleanup job [%s]: %w", s.config.SessionsCleanupSpec, err)
	}
	s.cron.Start()

	return nil
}

// InvalidateCaches drops the in-process exercises cache, so catalog entries added by
// a migration show up before the cache TTL runs out.
func (s *Server) InvalidateCaches() {
	if s.catalog == nil {
		return
	}
	s.catalog.Invalidate()
	log.Println("exercises catalog cache invalidated")
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	if err := s.startJobs(ctx); err != nil {
		log.Fatalf("failed to start background jobs: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: s.metricsRouter(),
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

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	log.Debugln("stopping background jobs ...")
	s.refresher.Stop()
	<-s.cron.Stop().Done()

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
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
