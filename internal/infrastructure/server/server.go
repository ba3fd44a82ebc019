package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/framehost/officebridge/internal/api/http"
	"github.com/framehost/officebridge/internal/api/middleware"
	"github.com/framehost/officebridge/internal/api/ws"
	"github.com/framehost/officebridge/internal/discovery"
	"github.com/framehost/officebridge/internal/embed"
	"github.com/framehost/officebridge/internal/infrastructure/config"
	"github.com/framehost/officebridge/internal/infrastructure/logging"
	"github.com/framehost/officebridge/internal/infrastructure/monitoring"
	"github.com/framehost/officebridge/internal/locale"
	"github.com/framehost/officebridge/internal/telemetry"
)

// Server wraps the HTTP router and its dependencies.
type Server struct {
	router  *gin.Engine
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer builds a fully wired host from configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing office bridge host",
		zap.String("port", cfg.Server.Port),
		zap.String("app_type", cfg.Editor.AppType),
		zap.Bool("discovery", cfg.Discovery.Enabled),
	)

	metrics := monitoring.NewMetrics()

	catalog, err := locale.Load()
	if err != nil {
		return nil, err
	}

	var discoveryClient *discovery.Client
	if cfg.Discovery.Enabled && cfg.Discovery.BaseURL != "" {
		discoveryClient = discovery.NewClient(cfg.Discovery.BaseURL, logger).
			WithTTL(cfg.Discovery.CacheTTL)
		logger.Info("Editor discovery enabled", zap.String("url", cfg.Discovery.BaseURL))
	}

	planner := embed.NewPlanner(cfg, catalog, discoveryClient, logger)

	// Load telemetry flows through the metrics mirror before landing in the log.
	emitter := monitoring.NewTelemetryEmitter(metrics, telemetry.NewZapEmitter(logger))

	handlers := apihttp.NewHandlers(cfg, planner, catalog, logger)
	wsHandler := ws.NewHandler(planner, emitter, metrics, logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Embed page endpoints
	router.GET("/api/frame/config", handlers.FrameConfig)
	router.GET("/api/strings", handlers.Strings)

	// WebSocket relay
	router.GET("/relay", wsHandler.HandleConnection)

	metricsHandler := promhttp.Handler()
	router.GET("/metrics", func(c *gin.Context) {
		metrics.UpdateUptime()
		metricsHandler.ServeHTTP(c.Writer, c.Request)
	})

	logger.Info("Host initialized")

	return &Server{
		router:  router,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close flushes buffered log entries.
func (s *Server) Close() error {
	s.logger.Info("Shutting down host")
	s.logger.Sync()
	return nil
}
