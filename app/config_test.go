package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `Title = "GoUserAdmin"

[Log]
LogLevel = "info"
AppName = "GoUserAdmin"
ServiceName = "go-user-admin"

[API]
Port = 5080

[Webserver]
Port = 8080
URL = "http://localhost:8080"
APIBaseURL = "http://localhost:5080"
`

func runConfig(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"config"}, args...))

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		dumpJSON = false
		devMode = false

		f := rootCmd.PersistentFlags().Lookup(keyConfigPath)
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	err := rootCmd.Execute()

	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(testConfig), 0o600))

	return dir
}

func TestConfigCommand_TOML(t *testing.T) {
	out, err := runConfig(t, "--config", writeConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, `Title = "GoUserAdmin"`)
	// defaults are filled in
	assert.Contains(t, out, `GormEngine = "sqlite"`)
	assert.Contains(t, out, `Storage = "memory"`)
}

func TestConfigCommand_JSON(t *testing.T) {
	out, err := runConfig(t, "--config", writeConfig(t), "--json", "--dev")
	require.NoError(t, err)
	assert.Contains(t, out, `"Title": "GoUserAdmin"`)
	assert.Contains(t, out, `"DevMode": true`)
}

func TestConfigCommand_EnvPath(t *testing.T) {
	t.Setenv(EnvConfigPath, writeConfig(t))

	out, err := runConfig(t)
	require.NoError(t, err)
	assert.Contains(t, out, `"GoUserAdmin"`)
}

func TestConfigCommand_MissingFile(t *testing.T) {
	_, err := runConfig(t, "--config", t.TempDir())
	require.Error(t, err)
}
