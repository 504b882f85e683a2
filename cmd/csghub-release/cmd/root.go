package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"opencsg.com/csghub-release/cmd/csghub-release/cmd/notes"
	"opencsg.com/csghub-release/cmd/csghub-release/cmd/publish"
	"opencsg.com/csghub-release/cmd/csghub-release/cmd/show"
	"opencsg.com/csghub-release/cmd/csghub-release/cmd/version"
	"opencsg.com/csghub-release/common/config"
	"opencsg.com/csghub-release/common/log"
)

var (
	logLevel   string
	logFormat  string
	configFile string
	closeLog   = func() error { return nil }
)

var RootCmd = &cobra.Command{
	Use:          "csghub-release",
	Short:        "Predictable release automation for repositories following Conventional Commits.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.SetConfigFile(configFile)
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		closeLog, err = log.Setup(logLevel, logFormat, cfg.Log.File)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "set log level to debug, info, warn or error (case-insensitive). default is INFO")
	RootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "text", "set log format to json or text. default is text")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a TOML config file, environment variables override its values")
	RootCmd.DisableAutoGenTag = true

	RootCmd.AddCommand(
		publish.Cmd,
		notes.Cmd,
		show.Cmd,
		version.Cmd,
	)
}
