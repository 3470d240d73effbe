// Package transport is the gateway's HTTP surface: the websocket endpoint,
// read-only room views and the catalog and library APIs.
package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rubsen49-sketch/MovieMatch/catalog"
	"github.com/rubsen49-sketch/MovieMatch/internal/constants"
	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	"github.com/rubsen49-sketch/MovieMatch/internal/validation"
	"github.com/rubsen49-sketch/MovieMatch/library"
	"github.com/rubsen49-sketch/MovieMatch/rooms"
)

const wsPath = "/ws"

type Router struct {
	roomSvc  rooms.RoomService
	provider catalog.Provider
	library  library.Store
	engine   *gin.Engine
	logger   *log.Logger
}

// NewRouter wires the HTTP API. provider and store may be nil, in which case
// their routes answer 503.
func NewRouter(
	roomSvc rooms.RoomService,
	provider catalog.Provider,
	store library.Store,
	wsHandler http.HandlerFunc,
	allowedOrigins []string,
	logger *log.Logger,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware(allowedOrigins))

	// Add OpenTelemetry middleware for automatic HTTP tracing
	engine.Use(otelgin.Middleware("moviematch-gateway"))
	engine.Use(accessLog(logger))

	r := &Router{
		roomSvc:  roomSvc,
		provider: provider,
		library:  store,
		engine:   engine,
		logger:   logger,
	}

	r.setupRoutes(wsHandler)
	return r
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) setupRoutes(wsHandler http.HandlerFunc) {
	if wsHandler != nil {
		r.engine.GET(wsPath, gin.WrapF(wsHandler))
	}

	api := r.engine.Group("/api")
	api.GET("/stats", r.stats)
	api.GET("/rooms/:code", r.roomSnapshot)

	api.GET("/catalog/discover", r.discover)
	api.GET("/catalog/movies/:movieId/providers", r.watchProviders)

	api.GET("/users/:userId/library", r.getLibrary)
	api.PUT("/users/:userId/library", r.putLibrary)

	// Health check
	r.engine.GET("/health", r.healthCheck)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   "Validation failed",
		"details": validation.FormatValidationError(err),
	})
}

func failure(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}

func (r *Router) stats(c *gin.Context) {
	c.JSON(http.StatusOK, r.roomSvc.Stats(c.Request.Context()))
}

func (r *Router) roomSnapshot(c *gin.Context) {
	var uri RoomURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}

	snap, err := r.roomSvc.RoomSnapshot(c.Request.Context(), uri.Code)
	if errors.Is(err, rooms.ErrRoomNotFound) {
		snapshotsNotFound.Add(c.Request.Context(), 1)
		failure(c, http.StatusNotFound, "room not found")
		return
	}
	if err != nil {
		r.logger.Error("Failed to snapshot room", log.Room(uri.Code), log.Error(err))
		failure(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (r *Router) discover(c *gin.Context) {
	if r.provider == nil {
		failure(c, http.StatusServiceUnavailable, "catalog is not configured")
		return
	}

	var req DiscoverQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()

	settings := rooms.DefaultSettings()
	if req.Room != "" {
		snap, err := r.roomSvc.RoomSnapshot(ctx, req.Room)
		if errors.Is(err, rooms.ErrRoomNotFound) {
			failure(c, http.StatusNotFound, "room not found")
			return
		}
		if err != nil {
			failure(c, http.StatusInternalServerError, err.Error())
			return
		}
		settings = snap.Settings
	} else {
		patch := rooms.SettingsPatch{}
		if len(req.Genres) > 0 {
			patch.Genres = &req.Genres
		}
		if len(req.Providers) > 0 {
			patch.Providers = &req.Providers
		}
		if req.MinRating > 0 {
			patch.MinRating = &req.MinRating
		}
		if req.Mode != "" {
			mode := rooms.DiscoveryMode(req.Mode)
			patch.DiscoveryMode = &mode
		}
		if req.YearFrom > 0 || req.YearTo > 0 {
			yr := rooms.YearRange{Min: req.YearFrom, Max: req.YearTo}
			if yr.Min == 0 {
				yr.Min = 1870
			}
			if yr.Max == 0 {
				yr.Max = time.Now().Year()
			}
			patch.YearRange = &yr
		}
		merged, err := settings.Merge(patch)
		if err != nil {
			badRequest(c, err)
			return
		}
		settings = merged
	}

	q := catalog.QueryFromSettings(settings, req.Page)
	if req.Region != "" {
		q.Region = strings.ToUpper(req.Region)
	}

	discoverRequests.Add(ctx, 1)
	page, err := r.provider.Discover(ctx, q)
	if err != nil {
		r.catalogError(c, "discover", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (r *Router) watchProviders(c *gin.Context) {
	if r.provider == nil {
		failure(c, http.StatusServiceUnavailable, "catalog is not configured")
		return
	}

	var uri MovieURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	var req ProvidersQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	region := strings.ToUpper(req.Region)
	if region == "" {
		region = constants.DefaultRegion
	}

	providerRequests.Add(c.Request.Context(), 1)
	list, err := r.provider.WatchProviders(c.Request.Context(), uri.MovieID, region)
	if err != nil {
		r.catalogError(c, "providers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"movieId":   uri.MovieID,
		"region":    region,
		"providers": list,
	})
}

func (r *Router) catalogError(c *gin.Context, op string, err error) {
	catalogFailures.Add(c.Request.Context(), 1, metric.WithAttributes(attribute.String("op", op)))
	switch {
	case errors.Is(err, errors.ErrNotFound):
		failure(c, http.StatusNotFound, "movie not found")
	case errors.Is(err, errors.ErrInvalidArgument):
		failure(c, http.StatusBadRequest, err.Error())
	default:
		r.logger.Error("Catalog lookup failed", log.String("op", op), log.Error(err))
		failure(c, http.StatusBadGateway, "catalog unavailable")
	}
}

func (r *Router) getLibrary(c *gin.Context) {
	if r.library == nil {
		failure(c, http.StatusServiceUnavailable, "library is not configured")
		return
	}

	var uri UserURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}

	entries, err := r.library.Get(c.Request.Context(), uri.UserID)
	if err != nil {
		libraryFailures.Add(c.Request.Context(), 1)
		r.logger.Error("Failed to read library", log.User(uri.UserID), log.Error(err))
		failure(c, http.StatusInternalServerError, "library unavailable")
		return
	}
	libraryReads.Add(c.Request.Context(), 1)
	c.JSON(http.StatusOK, gin.H{
		"userId":  uri.UserID,
		"entries": entries,
	})
}

func (r *Router) putLibrary(c *gin.Context) {
	if r.library == nil {
		failure(c, http.StatusServiceUnavailable, "library is not configured")
		return
	}

	var uri UserURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, err)
		return
	}
	var body LibraryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	if err := validation.Struct(&body); err != nil {
		badRequest(c, err)
		return
	}

	entries, err := r.library.Upsert(c.Request.Context(), uri.UserID, body.Entries)
	if err != nil {
		libraryFailures.Add(c.Request.Context(), 1)
		r.logger.Error("Failed to upsert library", log.User(uri.UserID), log.Error(err))
		failure(c, http.StatusInternalServerError, "library unavailable")
		return
	}
	libraryWrites.Add(c.Request.Context(), 1)

	r.logger.Info("Library updated",
		log.User(uri.UserID),
		log.Int("added", len(body.Entries)),
		log.Int("total", len(entries)))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"userId":  uri.UserID,
		"entries": entries,
	})
}

func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}
