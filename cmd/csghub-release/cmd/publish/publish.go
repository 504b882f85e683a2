package publish

import (
	"log/slog"

	"github.com/spf13/cobra"
	"opencsg.com/csghub-release/builder/github"
	"opencsg.com/csghub-release/common/config"
	"opencsg.com/csghub-release/component"
)

var (
	dryRun  bool
	profile string
)

func init() {
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what the release would do without changing the repository or GitHub")
	Cmd.Flags().StringVarP(&profile, "profile", "p", config.DefaultProfileName, "release profile from the release config file")
}

var Cmd = &cobra.Command{
	Use:     "publish",
	Short:   "Publish a new version of the project",
	Example: publishExample(),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		releaseConfig, err := config.LoadReleaseConfig(cfg.ReleaseConfigPath())
		if err != nil {
			return err
		}
		gh, err := github.NewClient(cfg, slog.Default())
		if err != nil {
			return err
		}

		pc := component.NewPublishComponent(cfg, releaseConfig, gh, slog.Default())
		result, err := pc.Publish(cmd.Context(), component.PublishOptions{DryRun: dryRun, Profile: profile})
		if err != nil {
			return err
		}
		slog.Debug("publish finished", slog.String("run_id", result.RunID), slog.String("outcome", string(result.Outcome)))
		return nil
	},
}

func publishExample() string {
	return `
# release the commits made since the latest release
csghub-release publish

# see what would be released, without any change
csghub-release publish --dry-run

# release with the "next" profile of release.config.json
csghub-release publish --profile next
`
}
