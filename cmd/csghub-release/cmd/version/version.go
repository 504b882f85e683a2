package version

import (
	"github.com/spf13/cobra"
	v "opencsg.com/csghub-release/version"
)

var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of the release tool",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("git: %s\n", v.GitRevision)
		cmd.Printf("version: %s\n", v.ReleaseVersion)
	},
}
