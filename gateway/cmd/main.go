package main

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/rubsen49-sketch/MovieMatch/catalog"
	"github.com/rubsen49-sketch/MovieMatch/catalog/tmdb"
	"github.com/rubsen49-sketch/MovieMatch/gateway/session"
	"github.com/rubsen49-sketch/MovieMatch/gateway/transport"
	"github.com/rubsen49-sketch/MovieMatch/internal/config"
	"github.com/rubsen49-sketch/MovieMatch/internal/httputil"
	"github.com/rubsen49-sketch/MovieMatch/internal/jwt"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	"github.com/rubsen49-sketch/MovieMatch/internal/otel"
	"github.com/rubsen49-sketch/MovieMatch/internal/redis"
	"github.com/rubsen49-sketch/MovieMatch/internal/workflow"
	"github.com/rubsen49-sketch/MovieMatch/library"
	libredis "github.com/rubsen49-sketch/MovieMatch/library/redis"
	"github.com/rubsen49-sketch/MovieMatch/rooms/registry"
	"github.com/rubsen49-sketch/MovieMatch/rooms/service"
)

type Config struct {
	App   config.App      `mapstructure:"app"`
	HTTP  httputil.Config `mapstructure:"http"`
	Redis redis.Config    `mapstructure:"redis"`
	Otel  otel.Config     `mapstructure:"otel"`
	TMDB  tmdb.Config     `mapstructure:"tmdb"`

	RedisLibraryPrefix string `mapstructure:"redis_library_prefix"`
	LibraryEnabled     bool   `mapstructure:"library_enabled"`

	// empty disables token verification on connect
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiresIn time.Duration `mapstructure:"jwt_expires_in"`

	RateLimit      session.RateLimit `mapstructure:"rate_limit"`
	AllowedOrigins []string          `mapstructure:"allowed_origins"`
}

func loadConfig() (*Config, error) {
	return config.Load(&Config{}, func(v *viper.Viper) {
		v.SetDefault("redis_library_prefix", "moviematch")
		v.SetDefault("library_enabled", true)
		v.SetDefault("jwt_secret", "")
		v.SetDefault("jwt_expires_in", "24h")
		v.SetDefault("rate_limit.per_second", 20)
		v.SetDefault("rate_limit.burst", 40)
		v.SetDefault("allowed_origins", []string{"*"})

		config.Setup(v, "app")
		redis.Setup(v, "redis")
		otel.Setup(v, "otel")
		tmdb.Setup(v, "tmdb")
		httputil.Setup(v, "http", "0.0.0.0:3001")
	})
}

func main() {
	config, err := loadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}

	logger, err := log.NewLogger(config.App.LogConfigFile)
	if err != nil {
		log.Fatal("Failed to create logger", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// Initialize OpenTelemetry
	otelShutdown, err := otel.Init(ctx, &config.Otel, logger)
	if err != nil {
		logger.Fatal("Failed to initialize OTEL provider", log.Error(err))
	}

	logger.Info("Starting MovieMatch gateway...")

	clock := clockwork.NewRealClock()

	var jwtAuth jwt.Auth
	if config.JWTSecret != "" {
		jwtAuth = jwt.NewAuth(config.JWTSecret, config.JWTExpiresIn)
	} else {
		logger.Warn("jwt_secret is empty, connections stay anonymous")
	}

	var provider catalog.Provider
	if config.TMDB.Enabled() {
		provider, err = tmdb.New(config.TMDB, clock, logger.Module("TMDB"))
		if err != nil {
			logger.Fatal("Failed to create TMDB client", log.Error(err))
		}
	} else {
		logger.Warn("tmdb.api_key is empty, catalog routes are disabled")
	}

	var (
		redisClient *goredis.Client
		store       library.Store
	)
	if config.LibraryEnabled {
		redisClient = redis.NewClient(&config.Redis)
		if err := redis.Ping(ctx, redisClient); err != nil {
			logger.Fatal("Failed to connect to Redis", log.Error(err))
		}
		store = libredis.NewStore(redisClient, config.RedisLibraryPrefix, clock, logger.Module("Library"))
	}

	connMgr := session.NewConnManager(logger.Module("ConnMgr"))
	roomRegistry := registry.New(clock, logger.Module("Registry"))
	roomSvc := service.NewRoomService(roomRegistry, connMgr, connMgr, logger.Module("RoomSvc"))

	sessionServer := session.NewServer(
		roomSvc,
		connMgr,
		jwtAuth,
		config.AllowedOrigins,
		config.RateLimit,
		logger.Module("Session"),
	)

	router := transport.NewRouter(
		roomSvc,
		provider,
		store,
		sessionServer.HandleWebSocket,
		config.AllowedOrigins,
		logger.Module("HTTP"),
	)
	httpServer := httputil.NewServer(&config.HTTP, router.Handler())

	go func() {
		logger.Info("Starting HTTP server", log.String("addr", config.HTTP.Addr))
		if err := httpServer.Listen(); err != nil {
			logger.Fatal("Failed to start HTTP server", log.Error(err))
		}
	}()

	// Graceful shutdown
	cleanup := workflow.Steps(logger.Module("CleanUp"),
		func(ctx context.Context) {
			if err := httpServer.Stop(ctx); err != nil {
				logger.Error("Error stopping HTTP server", log.Error(err))
			}
		},
		func(context.Context) {
			if redisClient == nil {
				return
			}
			if err := redisClient.Close(); err != nil {
				logger.Error("Error closing Redis client", log.Error(err))
			}
		},
		func(ctx context.Context) {
			if err := otelShutdown(ctx); err != nil {
				logger.Error("Failed to shutdown OTEL", log.Error(err))
			}
		},
	)
	workflow.WaitGracefulShutdown(ctx, logger.Module("CleanUp"), cleanup, config.App.ShutdownTimeout)
}
