package errorx

const errReleasePrefix = "REL-ERR"

const (
	releaseMissingToken = iota
	releaseInvalidToken
	releaseInvalidConfig
	releaseProfileNotFound
	releaseInvalidVersion
	releaseNoCommits
	releaseNoVersionBump
	releaseScriptFailed
	releaseRollback
	releaseTagNotFound
	releaseAlreadyExists
	releaseManifestFailed
	releaseInvalidRepo
)

var (
	// --- REL-ERR-xxx: pre-flight, versioning and publish pipeline ---
	ErrMissingToken     error = CustomError{prefix: errReleasePrefix, code: releaseMissingToken}
	ErrInvalidToken     error = CustomError{prefix: errReleasePrefix, code: releaseInvalidToken}
	ErrInvalidConfig    error = CustomError{prefix: errReleasePrefix, code: releaseInvalidConfig}
	ErrProfileNotFound  error = CustomError{prefix: errReleasePrefix, code: releaseProfileNotFound}
	ErrInvalidVersion   error = CustomError{prefix: errReleasePrefix, code: releaseInvalidVersion}
	ErrNoCommits        error = CustomError{prefix: errReleasePrefix, code: releaseNoCommits}
	ErrNoVersionBump    error = CustomError{prefix: errReleasePrefix, code: releaseNoVersionBump}
	ErrReleaseScript    error = CustomError{prefix: errReleasePrefix, code: releaseScriptFailed}
	ErrRollback         error = CustomError{prefix: errReleasePrefix, code: releaseRollback}
	ErrTagNotFound      error = CustomError{prefix: errReleasePrefix, code: releaseTagNotFound}
	ErrReleaseExists    error = CustomError{prefix: errReleasePrefix, code: releaseAlreadyExists}
	ErrManifestFailed   error = CustomError{prefix: errReleasePrefix, code: releaseManifestFailed}
	ErrInvalidRepoInfo  error = CustomError{prefix: errReleasePrefix, code: releaseInvalidRepo}
)

func MissingToken(ctx context) error {
	return newError(errReleasePrefix, releaseMissingToken, nil, ctx)
}

func InvalidToken(err error, ctx context) error {
	return newError(errReleasePrefix, releaseInvalidToken, err, ctx)
}

func InvalidConfig(err error, ctx context) error {
	return newError(errReleasePrefix, releaseInvalidConfig, err, ctx)
}

func ProfileNotFound(ctx context) error {
	return newError(errReleasePrefix, releaseProfileNotFound, nil, ctx)
}

func InvalidVersion(err error, ctx context) error {
	return newError(errReleasePrefix, releaseInvalidVersion, err, ctx)
}

func ReleaseScriptFailed(err error, ctx context) error {
	return newError(errReleasePrefix, releaseScriptFailed, err, ctx)
}

// RolledBack wraps the error that triggered a rollback. The error of the
// rollback itself, if any, is joined into err by the caller.
func RolledBack(err error, ctx context) error {
	return newError(errReleasePrefix, releaseRollback, err, ctx)
}

func TagNotFound(ctx context) error {
	return newError(errReleasePrefix, releaseTagNotFound, nil, ctx)
}

func ReleaseExists(ctx context) error {
	return newError(errReleasePrefix, releaseAlreadyExists, nil, ctx)
}

func ManifestFailed(err error, ctx context) error {
	return newError(errReleasePrefix, releaseManifestFailed, err, ctx)
}

func InvalidRepoInfo(err error, ctx context) error {
	return newError(errReleasePrefix, releaseInvalidRepo, err, ctx)
}
