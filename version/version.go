package version

// set with -ldflags "-X opencsg.com/csghub-release/version.GitRevision=..."
var (
	GitRevision    = "unknown"
	ReleaseVersion = "dev"
)
