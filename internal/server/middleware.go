package server

import (
	"time"

	"media_monitor/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader - имя заголовка для ID запроса
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey - ключ для хранения ID запроса в gin.Context
	RequestIDKey = "request_id"
)

// RequestID берёт ID запроса из заголовка или создаёт новый и возвращает его в ответе.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// AccessLog логирует информацию о каждом запросе
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Log.WithFields(logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": c.GetString(RequestIDKey),
			"remote_ip":  c.ClientIP(),
		}).Info("Request handled")
	}
}
