package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "users.db")

	cfg := testConfig + "\n[DB]\nGormEngine = \"sqlite\"\nName = \"" + filepath.ToSlash(dbPath) + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.toml"), []byte(cfg), 0o600))

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetSchema = false

		f := rootCmd.PersistentFlags().Lookup(keyConfigPath)
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	rootCmd.SetArgs([]string{"migrate", "--config", dir})
	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, dbPath)

	rootCmd.SetArgs([]string{"migrate", "--config", dir, "--reset"})
	require.NoError(t, rootCmd.Execute())
	assert.True(t, resetSchema)
}
