// Package stdlogger adapts the global zerolog logger to printf style logger interfaces,
// such as the one expected by resty.
package stdlogger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to zerolog.
type Logger struct {
	component string
}

// New returns a Logger tagging every line with component.
func New(component ...string) *Logger {
	l := &Logger{}
	if len(component) > 0 {
		l.component = component[0]
	}

	return l
}

func (l *Logger) event(level zerolog.Level) *zerolog.Event {
	e := log.WithLevel(level)
	if l.component != "" {
		e = e.Str("component", l.component)
	}

	return e
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, v ...any) {
	l.event(zerolog.DebugLevel).Msgf(format, v...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, v ...any) {
	l.event(zerolog.InfoLevel).Msgf(format, v...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(format string, v ...any) {
	l.event(zerolog.WarnLevel).Msgf(format, v...)
}

// Warningf is an alias of Warnf.
func (l *Logger) Warningf(format string, v ...any) {
	l.Warnf(format, v...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, v ...any) {
	l.event(zerolog.ErrorLevel).Msgf(format, v...)
}
