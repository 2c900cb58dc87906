package app

import (
	"github.com/spf13/cobra"

	"github.com/GoUserAdmin/GoUserAdmin/internal/daemon"
)

func init() { //nolint:gochecknoinits
	migrateCmd.Flags().BoolVar(&resetSchema, "reset", false, "roll back every schema version first (drops all data)")

	rootCmd.AddCommand(apiCmd, webCmd, migrateCmd)
}

var (
	resetSchema bool

	apiCmd = &cobra.Command{
		Use:   "api",
		Short: "Migrate the database and serve the REST API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(true)
			if err != nil {
				return err
			}

			return daemon.RunAPI(cmd.Context(), cfg) //nolint:wrapcheck
		},
	}

	webCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve the front-end",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(true)
			if err != nil {
				return err
			}

			return daemon.RunWeb(cmd.Context(), cfg) //nolint:wrapcheck
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Migrate and seed the database, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(true)
			if err != nil {
				return err
			}

			gdb, err := daemon.Migrate(cmd.Context(), cfg, resetSchema)
			if err != nil {
				return err //nolint:wrapcheck
			}

			sqlDB, err := gdb.DB()
			if err != nil {
				return err //nolint:wrapcheck
			}

			return sqlDB.Close() //nolint:wrapcheck
		},
	}
)
