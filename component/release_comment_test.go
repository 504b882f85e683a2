package component

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReleaseComment(t *testing.T) {
	comment := ReleaseComment(ReleaseCommentInput{
		Context:     testReleaseContext,
		PackageName: "my-package",
		Profile:     "latest",
		ReleaseURL:  "/releases/1",
	})

	require.Equal(t, "## Released: v0.1.0 🎉\n"+
		"\n"+
		"This has been released in v0.1.0.\n"+
		"\n"+
		"- 📄 [**Release notes**](/releases/1)\n"+
		"- 📦 [View on npm](https://www.npmjs.com/package/my-package/v/0.1.0)\n"+
		"\n"+
		"Get these changes by running the following command:\n"+
		"\n"+
		"```\n"+
		"npm i my-package@latest\n"+
		"```\n"+
		"\n"+
		"---\n"+
		"\n"+
		"_Predictable release automation by [Release](https://github.com/ossjs/release)_.", comment)
}

func TestReleaseComment_Profile(t *testing.T) {
	comment := ReleaseComment(ReleaseCommentInput{
		Context:     testReleaseContext,
		PackageName: "my-package",
		Profile:     "next",
		ReleaseURL:  "#",
	})
	require.Contains(t, comment, "npm i my-package@next\n")
	require.Contains(t, comment, "[**Release notes**](#)")
}
