package gorm_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	adapter "github.com/GoUserAdmin/GoUserAdmin/internal/logger/adapter/gorm"
)

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()

	var (
		buf      bytes.Buffer
		previous = log.Logger
		level    = zerolog.GlobalLevel()
	)

	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(level)
	})

	return &buf
}

func TestLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	testCases := []struct {
		name      string
		level     gormlogger.LogLevel
		begin     time.Time
		err       error
		wantLevel string
	}{
		{name: "error logged", level: gormlogger.Warn, begin: time.Now(), err: errors.New("boom"), wantLevel: "error"}, //nolint:goerr113
		{name: "record not found ignored", level: gormlogger.Warn, begin: time.Now(), err: gorm.ErrRecordNotFound},
		{name: "slow query warns", level: gormlogger.Warn, begin: time.Now().Add(-time.Second), wantLevel: "warn"},
		{name: "fast query hidden at warn", level: gormlogger.Warn, begin: time.Now()},
		{name: "fast query traced at info", level: gormlogger.Info, begin: time.Now(), wantLevel: "trace"},
		{name: "silent", level: gormlogger.Silent, begin: time.Now(), err: errors.New("boom")}, //nolint:goerr113
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureGlobal(t)

			l := adapter.New(100 * time.Millisecond).LogMode(tc.level)
			l.Trace(context.Background(), tc.begin, query, tc.err)

			if tc.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}

			assert.Contains(t, buf.String(), `"level":"`+tc.wantLevel+`"`)
			assert.Contains(t, buf.String(), "SELECT 1")
		})
	}
}

func TestLogger_Messages(t *testing.T) {
	buf := captureGlobal(t)

	l := adapter.New(0)
	assert.Equal(t, adapter.DefaultSlowThreshold, l.SlowThreshold)

	l.Info(context.Background(), "hidden %d", 1)
	l.Warn(context.Background(), "warned %d", 2)
	l.Error(context.Background(), "failed %d", 3)

	assert.NotContains(t, buf.String(), "hidden 1")
	assert.Contains(t, buf.String(), "warned 2")
	assert.Contains(t, buf.String(), "failed 3")
}
