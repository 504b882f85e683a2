package notes

import (
	"log/slog"

	"github.com/spf13/cobra"
	"opencsg.com/csghub-release/builder/github"
	"opencsg.com/csghub-release/common/config"
	"opencsg.com/csghub-release/component"
)

var Cmd = &cobra.Command{
	Use:     "notes <tag>",
	Short:   "Generate GitHub release notes for the given release version",
	Example: "csghub-release notes v1.2.3",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		gh, err := github.NewClient(cfg, slog.Default())
		if err != nil {
			return err
		}

		nc := component.NewNotesComponent(cfg, gh, slog.Default())
		_, err = nc.CreateReleaseNotes(cmd.Context(), args[0])
		return err
	},
}
