package show

import (
	"log/slog"

	"github.com/spf13/cobra"
	"opencsg.com/csghub-release/builder/github"
	"opencsg.com/csghub-release/common/config"
	"opencsg.com/csghub-release/component"
)

var Cmd = &cobra.Command{
	Use:   "show [tag]",
	Short: "Show release info",
	Example: `
# show the latest release info
csghub-release show

# show specific release tag info
csghub-release show v1.2.3
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		gh, err := github.NewClient(cfg, slog.Default())
		if err != nil {
			return err
		}

		var tag string
		if len(args) > 0 {
			tag = args[0]
		}
		sc := component.NewShowComponent(cfg, gh, slog.Default())
		_, err = sc.Show(cmd.Context(), tag)
		return err
	},
}
