// Package fiber provides a zerolog based access log middleware for fiber.
package fiber

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GoUserAdmin/GoUserAdmin/internal/logger"
)

// Config of the access log middleware.
type Config struct {
	// Next skips the middleware when it returns true.
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// CacheControlError is set on responses the error handler failed to write.
	CacheControlError string

	// CheckAliveURI is not logged when Config.DisableCheckAlive is set.
	CheckAliveURI string
}

// ConfigDefault is the default config.
var ConfigDefault = Config{
	CacheControlError: "max-age=0",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	return cfg
}

// New creates the access log middleware.
func New(config ...Config) fiber.Handler {
	var (
		writers []io.Writer
		cfg     = configDefault(config...)
	)

	if cfg.Config.File.Enabled {
		if w := newRollingAccessFile(cfg.Config.File); w != nil {
			writers = append(writers, w)
		}
	}

	if cfg.Config.Console.Enabled && cfg.Config.EnableAccessLogToConsole {
		if cfg.Config.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{zerolog.LevelFieldName},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	accessLogger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if errH := c.App().ErrorHandler(c, chainErr); errH != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck
				c.Response().Header.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}

			logAccess(accessLogger.Log().Err(chainErr), c, time.Since(start))

			return nil
		}

		if cfg.Config.DisableCheckAlive && cfg.CheckAliveURI != "" && c.Path() == cfg.CheckAliveURI {
			return nil
		}

		logAccess(accessLogger.Log(), c, time.Since(start))

		return nil
	}
}

// logAccess writes one access line. The raw request path is logged, fasthttp normalises c.Path().
func logAccess(e *zerolog.Event, c *fiber.Ctx, elapsed time.Duration) {
	seconds := elapsed.Seconds()
	c.Response().Header.Set("X-Performance", strconv.FormatFloat(seconds, 'f', 6, 64))

	e.Str("IP", c.IP()).
		Int("status", c.Response().StatusCode()).
		Float64("X-Performance", seconds).
		Bytes("URI", c.Request().RequestURI()).
		Str("method", c.Method()).
		Bytes("host", c.Request().Host()).
		Str("requestId", c.GetRespHeader(fiber.HeaderXRequestID)).
		Str(fiber.HeaderXForwardedFor, c.Get(fiber.HeaderXForwardedFor)).
		Str(fiber.HeaderUserAgent, c.Get(fiber.HeaderUserAgent)).
		Str(fiber.HeaderReferer, c.Get(fiber.HeaderReferer)).
		Send()
}

func newRollingAccessFile(cfg logger.LogFile) io.Writer {
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil { //nolint:mnd
			log.Error().Err(err).Str("path", cfg.Path).Msg("can't create log directory")

			return nil
		}
	}

	return logger.NewRollingFile(cfg.Path, cfg.Access)
}
