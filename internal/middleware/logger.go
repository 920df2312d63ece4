// Package middleware provides the logger factory and the gin middlewares.
package middleware

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/go-petr/pet-vault/pkg/configpkg"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// CreateLogger returns the root logger of the application.
//
// Production logs are JSON on stderr. Development logs go to a console writer
// with caller info and default to trace level. LOG_LEVEL overrides the level
// in both cases; an unknown level is ignored.
func CreateLogger(config configpkg.Config) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := zerolog.InfoLevel
	logger := zerolog.New(os.Stderr)

	if config.Environment == "development" {
		level = zerolog.TraceLevel
		logger = logger.
			Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Caller().
			Logger()
	}

	if parsed, err := zerolog.ParseLevel(config.LogLevel); err == nil && config.LogLevel != "" {
		level = parsed
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// RequestLogger puts a request scoped logger into the request context and
// writes one access line per request. Panics in later handlers are logged and
// answered with 500.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header(RequestIDHeader, requestID)

		l := logger.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		defer func() {
			if panicVal := recover(); panicVal != nil {
				l.Error().Interface("panic", panicVal).Msgf("panic message: %v", panicVal)
				c.AbortWithStatus(http.StatusInternalServerError)
			}

			status := c.Writer.Status()

			event := l.Info()
			if status >= http.StatusInternalServerError {
				event = l.Error()
			}

			route := c.FullPath()
			if route == "" {
				route = "static"
			}

			event.
				Str("client_ip", c.ClientIP()).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("route", route).
				Int("status_code", status).
				Int("bytes", c.Writer.Size()).
				Dur("latency", time.Since(start)).
				Msg(c.Errors.ByType(gin.ErrorTypePrivate).String())
		}()

		c.Next()
	}
}
