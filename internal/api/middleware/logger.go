package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github/chapool/evm-wallet/internal/util"
)

type LoggerConfig struct {
	Level  zerolog.Level
	Logger zerolog.Logger
}

// LoggerWithConfig attaches a request-scoped zerolog logger to the request
// context and logs every finished request at the configured level.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			l := config.Logger.With().
				Str("id", util.RequestIDFromContext(req.Context())).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Logger()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			l.WithLevel(config.Level).
				Int("status", res.Status).
				Int64("bytes_out", res.Size).
				Dur("duration", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("http_request")

			return nil
		}
	}
}

// Logger is LoggerWithConfig using the global logger.
func Logger(level zerolog.Level) echo.MiddlewareFunc {
	return LoggerWithConfig(LoggerConfig{Level: level, Logger: log.Logger})
}
