package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"media_monitor/internal/aggregator"
	"media_monitor/internal/logger"
	"media_monitor/internal/metrics"
	"media_monitor/internal/models"
	"media_monitor/internal/watchlist"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const errKeywordRequired = "keyword is required"

// Searcher - конвейер агрегации, который обслуживает сервер.
type Searcher interface {
	Aggregate(ctx context.Context, keyword string) (*models.AggregateResult, error)
	ProviderCount() int
}

// Server хранит зависимости HTTP-обработчиков.
type Server struct {
	searcher Searcher
	board    *watchlist.Board
	metrics  *metrics.Metrics
}

// NewServer создаёт новый экземпляр Server. board и m могут быть nil.
func NewServer(searcher Searcher, board *watchlist.Board, m *metrics.Metrics) *Server {
	if board == nil {
		board = watchlist.NewBoard()
	}
	return &Server{searcher: searcher, board: board, metrics: m}
}

// Router собирает gin-маршрутизатор со всеми маршрутами и middleware.
// Пустой allowedOrigins разрешает любой источник.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
	}
	if len(allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.HealthCheck)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api")
	api.GET("/search", s.Search)
	api.POST("/search", s.Search)
	api.GET("/watchlist", s.ListWatchlist)
	api.GET("/watchlist/:keyword", s.GetWatchlist)

	return r
}

// HealthCheck отвечает 200 и числом настроенных поставщиков.
// Ноль поставщиков - не сбой: поиск отвечает синтетическими данными.
func (s *Server) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Providers: s.searcher.ProviderCount(),
	})
}

// Search ищет по ключевому слову из тела POST {"keyword": ...} или из параметра ?keyword=.
// Сбои поставщиков не меняют статус ответа: 400 только для пустого ключевого слова.
func (s *Server) Search(c *gin.Context) {
	keyword, ok := keywordFrom(c)
	if !ok {
		s.respondError(c, http.StatusBadRequest, errKeywordRequired)
		return
	}

	res, err := s.searcher.Aggregate(c.Request.Context(), keyword)
	switch {
	case errors.Is(err, aggregator.ErrInvalidKeyword):
		s.respondError(c, http.StatusBadRequest, errKeywordRequired)
		return
	case err != nil:
		logger.ForKeyword(keyword).WithField("request_id", c.GetString(RequestIDKey)).Errorf("Search failed: %v", err)
		s.respondError(c, http.StatusInternalServerError, "search failed")
		return
	}

	s.metrics.SearchRequest(strconv.Itoa(http.StatusOK))
	c.JSON(http.StatusOK, NewSearchResponse(res))
}

// ListWatchlist возвращает сводки по всем отслеживаемым ключевым словам.
func (s *Server) ListWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, s.board.List())
}

// GetWatchlist возвращает сводку по одному ключевому слову или 404.
func (s *Server) GetWatchlist(c *gin.Context) {
	d, ok := s.board.Get(c.Param("keyword"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "keyword is not tracked"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) respondError(c *gin.Context, status int, msg string) {
	s.metrics.SearchRequest(strconv.Itoa(status))
	c.JSON(status, ErrorResponse{Error: msg})
}

func keywordFrom(c *gin.Context) (string, bool) {
	var keyword string
	if c.Request.Method == http.MethodPost {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", false
		}
		keyword = req.Keyword
	} else {
		keyword = c.Query("keyword")
	}

	keyword = strings.TrimSpace(keyword)
	return keyword, keyword != ""
}
