// Package app implements the command line of the application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/logger"
)

// EnvConfigPath overrides the --config flag default.
const EnvConfigPath = "GO_USER_ADMIN_CONFIG_PATH"

const keyConfigPath = "config"

var (
	devMode bool

	rootCmd = &cobra.Command{
		Use:   "go-user-admin",
		Short: "GoUserAdmin manages users, their groups and the groups' permissions",
		Long: `GoUserAdmin manages users, their groups and the groups' permissions.

It consists of a REST API owning the database and a server-rendered
front-end that talks to the API.`,
		Args:         cobra.OnlyValidArgs,
		SilenceUsage: true,
	}
)

func init() { //nolint:gochecknoinits
	rootCmd.PersistentFlags().String(keyConfigPath, config.DefaultPath, "directory holding main.toml (env "+EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	_ = viper.BindPFlag(keyConfigPath, rootCmd.PersistentFlags().Lookup(keyConfigPath))
	_ = viper.BindEnv(keyConfigPath, EnvConfigPath)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute() //nolint:wrapcheck
}

// loadConfig reads the configuration, initLogger also replaces the global logger.
func loadConfig(initLogger bool) (*config.Config, error) {
	cfg, err := config.ReadConfig(viper.GetString(keyConfigPath))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if devMode {
		cfg.DevMode = true
	}

	if initLogger {
		if err := logger.Init(cfg.Log); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	return &cfg, nil
}
