package component

import (
	"fmt"

	"opencsg.com/csghub-release/common/types"
)

type ReleaseCommentInput struct {
	Context types.ReleaseContext
	// PackageName is the name field of the manifest.
	PackageName string
	// Profile is the dist tag the release was published under.
	Profile    string
	ReleaseURL string
}

const releaseCommentTemplate = "## Released: %[1]s 🎉\n\n" +
	"This has been released in %[1]s.\n\n" +
	"- 📄 [**Release notes**](%[2]s)\n" +
	"- 📦 [View on npm](https://www.npmjs.com/package/%[3]s/v/%[4]s)\n\n" +
	"Get these changes by running the following command:\n\n" +
	"```\n" +
	"npm i %[3]s@%[5]s\n" +
	"```\n\n" +
	"---\n\n" +
	"_Predictable release automation by [Release](https://github.com/ossjs/release)_."

// ReleaseComment renders the comment left on every issue and pull request
// shipped in a release.
func ReleaseComment(input ReleaseCommentInput) string {
	next := input.Context.NextRelease
	return fmt.Sprintf(releaseCommentTemplate, next.Tag(), input.ReleaseURL, input.PackageName, next.Version, input.Profile)
}
