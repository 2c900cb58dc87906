package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
)

var dumpJSON bool

func init() { //nolint:gochecknoinits
	configCmd.Flags().BoolVar(&dumpJSON, "json", false, "print JSON instead of TOML")

	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}

		dump := config.DumpConfig
		if dumpJSON {
			dump = config.DumpConfigJSON
		}

		out, err := dump(cfg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), out)

		return err //nolint:wrapcheck
	},
}
