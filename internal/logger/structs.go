package logger

// Console configures logging to stdout/stderr.
type Console struct {
	Enabled bool `toml:"enabled"`
	// UseConsoleWriter renders human readable lines instead of JSON.
	UseConsoleWriter bool
}

// RollingFile describes one lumberjack managed log file.
type RollingFile struct {
	Name       string `toml:"name"`
	MaxSize    int    `toml:"maxSize"` // megabytes
	MaxBackups int    `toml:"maxBackups"`
	MaxAge     int    `toml:"maxAge"` // days
}

// LogFile configures file based logging, one file per level group.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	Access RollingFile `toml:"access"`
	Error  RollingFile `toml:"error"`
	Info   RollingFile `toml:"info"`
	Trace  RollingFile `toml:"trace"`
	Warn   RollingFile `toml:"warn"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string // trace, debug, info, warn, error.
	LogEnv   string

	// EnableAccessLogToConsole writes fiber access logs to stdout.
	// Has no effect while Console.Enabled is false.
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log /checkalive calls

	// SlowQueryThreshold in milliseconds; queries above it are logged at warn level.
	SlowQueryThreshold int

	AppName     string
	ServiceName string

	Console Console
	File    LogFile `toml:"file"`
}
