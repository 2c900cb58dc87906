// Package gorm routes gorm's SQL logging through zerolog.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold is used when New gets a zero threshold.
const DefaultSlowThreshold = 200 * time.Millisecond

// Logger implements gorm's logger.Interface.
type Logger struct {
	SlowThreshold time.Duration
	Level         gormlogger.LogLevel
}

// New returns a Logger at Warn level, so slow queries and errors are reported.
func New(slowThreshold time.Duration) *Logger {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}

	return &Logger{
		SlowThreshold: slowThreshold,
		Level:         gormlogger.Warn,
	}
}

// LogMode returns a copy using level.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	nl := *l
	nl.Level = level

	return &nl
}

// Info logs at info level.
func (l *Logger) Info(_ context.Context, msg string, data ...any) {
	if l.Level >= gormlogger.Info {
		log.Info().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Warn logs at warn level.
func (l *Logger) Warn(_ context.Context, msg string, data ...any) {
	if l.Level >= gormlogger.Warn {
		log.Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Error logs at error level.
func (l *Logger) Error(_ context.Context, msg string, data ...any) {
	if l.Level >= gormlogger.Error {
		log.Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace logs one executed statement. Record-not-found is not an error here.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var e *zerolog.Event

	switch {
	case err != nil && l.Level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		e = log.Error().Err(err)
	case elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		e = log.Warn().Dur("threshold", l.SlowThreshold)
	case l.Level >= gormlogger.Info:
		e = log.Trace()
	default:
		return
	}

	sql, rows := fc()

	e.Str("component", "gorm").
		Dur("elapsed", elapsed).
		Int64("rows", rows).
		Str("sql", sql).
		Msg("query")
}
