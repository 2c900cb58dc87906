package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoUserAdmin/GoUserAdmin/internal/logger"
)

func TestInit(t *testing.T) {
	testCases := []struct {
		name         string
		cfg          logger.Log
		expectOutput bool
		expectJSON   bool
	}{
		{
			name: "nothing enabled",
			cfg: logger.Log{
				LogLevel:    "",
				ServiceName: "test",
				AppName:     "test",
			},
		},
		{
			name: "console json info",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			expectOutput: true,
			expectJSON:   true,
		},
		{
			name: "console writer",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			expectOutput: true,
		},
		{
			name: "console json trace with caller",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true},
			},
			expectOutput: true,
			expectJSON:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, func() {
				require.NoError(t, logger.Init(tc.cfg))

				log.Info().Msg("info line")
				log.Error().Err(errors.New("boom")).Msg("error line") //nolint:goerr113
			})

			if !tc.expectOutput {
				assert.Empty(t, out)
				return
			}

			assert.NotEmpty(t, out)

			if tc.expectJSON {
				for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
					var decoded map[string]any
					require.NoError(t, json.Unmarshal([]byte(line), &decoded), "line %q", line)
					assert.Equal(t, "test", decoded["app"])
				}
			}
		})
	}
}

func TestInit_Errors(t *testing.T) {
	assert.Error(t, logger.Init(logger.Log{LogLevel: "loud", ServiceName: "s", AppName: "a"}))
	assert.ErrorIs(t, logger.Init(logger.Log{LogLevel: "info", AppName: "a"}), logger.ErrServiceNameIsEmpty)
	assert.ErrorIs(t, logger.Init(logger.Log{LogLevel: "info", ServiceName: "s"}), logger.ErrAppNameIsEmpty)
}

func TestInit_Files(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	err := logger.Init(logger.Log{
		LogLevel:    "info",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled: true,
			Path:    dir,
			Error:   logger.RollingFile{Name: "error.log", MaxSize: 1},
			Info:    logger.RollingFile{Name: "info.log", MaxSize: 1},
			Trace:   logger.RollingFile{Name: "trace.log", MaxSize: 1},
			Warn:    logger.RollingFile{Name: "warn.log", MaxSize: 1},
		},
	})
	require.NoError(t, err)

	log.Info().Msg("to info file")
	log.Warn().Msg("to warn file")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "to info file")

	warn, err := os.ReadFile(filepath.Join(dir, "warn.log"))
	require.NoError(t, err)
	assert.Contains(t, string(warn), "to warn file")
	assert.NotContains(t, string(warn), "to info file")
}

func TestLevelWriter_WriteLevel(t *testing.T) {
	var info, warn, errs, trace bytes.Buffer

	lw := &logger.LevelWriter{InfoWriter: &info, WarnWriter: &warn, ErrorWriter: &errs, TraceWriter: &trace}

	for level, want := range map[zerolog.Level]*bytes.Buffer{
		zerolog.DebugLevel: &info,
		zerolog.InfoLevel:  &info,
		zerolog.WarnLevel:  &warn,
		zerolog.ErrorLevel: &errs,
		zerolog.FatalLevel: &errs,
		zerolog.TraceLevel: &trace,
	} {
		before := want.Len()
		_, err := lw.WriteLevel(level, []byte("x"))
		require.NoError(t, err)
		assert.Equal(t, before+1, want.Len(), level.String())
	}

	n, err := lw.WriteLevel(zerolog.Disabled, []byte("dropped"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

// captureOutput redirects stdout and stderr while fn runs.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	return <-outC
}
