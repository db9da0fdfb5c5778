// @title           StockPlus Dashboard API
// @version         1.0
// @description     Live watchlist, chart and AI insight service for the StockPlus dashboard
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8090
// @BasePath  /api/v1

package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	appinterfaces "stockplus/internal/application/interfaces"
	"stockplus/internal/application/service/analysis"
	"stockplus/internal/application/service/coordinator"
	"stockplus/internal/application/service/holdings"
	"stockplus/internal/application/service/insight"
	"stockplus/internal/application/service/watchlist"
	market "stockplus/internal/domain/entity/market"
	"stockplus/internal/infrastructure/archive"
	"stockplus/internal/infrastructure/backend"
	"stockplus/internal/interfaces/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const apiBasePath = "/api/v1"

var (
	errMissingCode    = errors.New("stock code is required")
	errArchiveOff     = errors.New("tick archive is not configured")
	errInvalidLimit   = errors.New("limit must be a positive integer")
	errInvalidTradeID = errors.New("trade id must be a positive integer")
)

// FeedSubscriber is the reference counted upstream price stream.
type FeedSubscriber interface {
	Subscribe()
	Unsubscribe()
}

// TickHistory reads archived ticks.
type TickHistory interface {
	LastTicks(ctx context.Context, code string, venue market.Venue, limit int) ([]archive.TickRow, error)
}

// Deps are the services exposed over HTTP. Feed, Archive and Cache are optional.
type Deps struct {
	Coordinator *coordinator.Coordinator
	Insight     *insight.Service
	Holdings    *holdings.Service
	Analysis    analysis.Opener
	Hub         *ws.Hub
	Feed        FeedSubscriber
	Archive     TickHistory
	Cache       *redis.Client
	CacheTTL    time.Duration
	Logger      *logrus.Logger
}

type Handler struct {
	router      *gin.Engine
	coordinator *coordinator.Coordinator
	insight     *insight.Service
	holdings    *holdings.Service
	opener      analysis.Opener
	hub         *ws.Hub
	feed        FeedSubscriber
	archive     TickHistory
	cache       *redis.Client
	cacheTTL    time.Duration
	base        *logrus.Logger
	logger      *logrus.Entry

	updates *fanout

	analysisMu   sync.Mutex
	analysisCode string
	dashboard    *analysis.Stream
	transcript   analysis.Transcript
}

var _ appinterfaces.HTTPHandler = (*Handler)(nil)

func NewHandler(deps Deps) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router:      router,
		coordinator: deps.Coordinator,
		insight:     deps.Insight,
		holdings:    deps.Holdings,
		opener:      deps.Analysis,
		hub:         deps.Hub,
		feed:        deps.Feed,
		archive:     deps.Archive,
		cache:       deps.Cache,
		cacheTTL:    deps.CacheTTL,
		base:        deps.Logger,
		logger:      deps.Logger.WithField("component", "http_handler"),
		updates:     newFanout(),
		dashboard:   analysis.NewStream(deps.Analysis, deps.Logger),
	}
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// PublishWatchlist pushes a changed watchlist group to stream and socket
// clients. It is registered as a watchlist change listener.
func (h *Handler) PublishWatchlist(groupID int, items []market.Instrument) {
	update := watchlistUpdate{Type: "watchlist", Group: groupID, Items: items}
	h.updates.publish(update)
	if h.hub != nil {
		h.hub.Broadcast(update)
	}
}

func (h *Handler) registerRoutes() {
	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if h.hub != nil {
		h.router.GET("/ws", gin.WrapF(h.hub.ServeWS(h.subscribeFeed, h.unsubscribeFeed, h.onControl)))
	}

	api := h.router.Group(apiBasePath)
	{
		api.GET("/dashboard", h.getDashboard)
		api.GET("/stock/:code", h.openStock)

		wl := api.Group("/watchlist")
		{
			wl.GET("", h.getWatchlist)
			wl.POST("", h.addToWatchlist)
			wl.DELETE("", h.clearWatchlist)
			wl.POST("/reload", h.reloadWatchlist)
			wl.PUT("/group", h.selectGroup)
			wl.PUT("/venue", h.setVenue)
			wl.DELETE("/:code", h.deleteFromWatchlist)
			wl.PUT("/:code/favorite", h.setFavorite)
		}

		sel := api.Group("/selection")
		{
			sel.PUT("", h.selectInstrument)
			sel.DELETE("", h.clearSelection)
		}

		ch := api.Group("/chart")
		{
			ch.GET("", h.getChart)
			ch.GET("/daily", h.getDailyPrices)
			ch.PUT("/period", h.setPeriod)
		}

		stocks := api.Group("/stocks")
		if h.cache != nil {
			stocks.Use(h.cacheMiddleware())
		}
		{
			stocks.GET("/search", h.searchStocks)
			stocks.GET("/:code/investors", h.getInvestors)
			stocks.GET("/:code/ticks", h.getArchivedTicks)
		}

		api.GET("/insight", h.getInsight)
		kw := api.Group("/keywords")
		{
			kw.GET("", h.getKeywords)
			kw.POST("", h.addKeyword)
			kw.DELETE("", h.deleteKeyword)
		}

		hd := api.Group("/holdings")
		{
			hd.GET("", h.getHoldings)
			hd.POST("", h.addTrade)
			hd.GET("/portfolio", h.getPortfolio)
			hd.GET("/:code/history", h.getTradeHistory)
			hd.DELETE("/history/:id", h.deleteTrade)
		}

		an := api.Group("/analysis")
		{
			an.GET("", h.getAnalysis)
			an.DELETE("", h.cancelAnalysis)
			an.POST("/:code", h.startAnalysis)
			an.GET("/:code/stream", h.streamAnalysis)
		}

		api.GET("/stream/prices", h.streamPrices)
	}
}

func (h *Handler) subscribeFeed() {
	if h.feed != nil {
		h.feed.Subscribe()
	}
}

func (h *Handler) unsubscribeFeed() {
	if h.feed != nil {
		h.feed.Unsubscribe()
	}
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, watchlist.ErrInvalidGroup),
		errors.Is(err, watchlist.ErrEmptyCode),
		errors.Is(err, coordinator.ErrInvalidPeriod),
		errors.Is(err, coordinator.ErrInvalidVenue),
		errors.Is(err, insight.ErrEmptyKeyword),
		errors.Is(err, holdings.ErrInvalidTrade),
		errors.Is(err, holdings.ErrInvalidID),
		errors.Is(err, holdings.ErrEmptyCode),
		errors.Is(err, analysis.ErrEmptyCode),
		errors.Is(err, errMissingCode),
		errors.Is(err, errInvalidLimit),
		errors.Is(err, errInvalidTradeID):
		return http.StatusBadRequest
	case errors.Is(err, watchlist.ErrNotFound),
		errors.Is(err, coordinator.ErrNotSelected):
		return http.StatusNotFound
	case errors.Is(err, insight.ErrDuplicateKeyword),
		errors.Is(err, insight.ErrKeywordLimit),
		errors.Is(err, analysis.ErrAlreadyStreaming):
		return http.StatusConflict
	case errors.Is(err, errArchiveOff):
		return http.StatusServiceUnavailable
	case errors.Is(err, backend.ErrStatus):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.FullPath()).Warn("request failed")
	}
	writeError(c, status, err)
}

// cacheMiddleware caches GET responses in Redis.
func (h *Handler) cacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := h.cacheKey(c)
		ctx := c.Request.Context()

		if cached, err := h.cache.Get(ctx, key).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: c.Writer,
			status:         http.StatusOK,
			body:           &bytes.Buffer{},
		}
		c.Writer = recorder

		c.Next()

		if recorder.status >= 200 && recorder.status < 300 && recorder.body.Len() > 0 {
			_ = h.cache.Set(ctx, key, recorder.body.Bytes(), h.cacheTTL).Err()
		}
	}
}

type responseRecorder struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if len(data) > 0 {
		r.body.Write(data)
	}
	return r.ResponseWriter.Write(data)
}

func (h *Handler) cacheKey(c *gin.Context) string {
	return fmt.Sprintf("cache:%s:%s?%s", c.Request.Method, c.Request.URL.Path, c.Request.URL.RawQuery)
}

func parseVenueQuery(c *gin.Context) (market.Venue, error) {
	venue, err := market.ParseVenue(c.Query("exchangeCode"))
	if err != nil {
		return "", fmt.Errorf("%w: %s", coordinator.ErrInvalidVenue, c.Query("exchangeCode"))
	}
	return venue, nil
}

func parseLimitQuery(c *gin.Context, fallback int) (int, error) {
	value := c.Query("limit")
	if value == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit <= 0 {
		return 0, errInvalidLimit
	}
	return limit, nil
}
