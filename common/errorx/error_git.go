package errorx

const errGitPrefix = "GIT-ERR"

const (
	gitCommandFailed = iota
	gitCommitFailed
	gitTagFailed
	gitPushFailed
	gitResetFailed
	gitLogFailed
)

var (
	// --- GIT-ERR-xxx: local repository operations ---
	ErrGitCommandFailed error = CustomError{prefix: errGitPrefix, code: gitCommandFailed}
	ErrGitCommitFailed  error = CustomError{prefix: errGitPrefix, code: gitCommitFailed}
	ErrGitTagFailed     error = CustomError{prefix: errGitPrefix, code: gitTagFailed}
	ErrGitPushFailed    error = CustomError{prefix: errGitPrefix, code: gitPushFailed}
	ErrGitResetFailed   error = CustomError{prefix: errGitPrefix, code: gitResetFailed}
	ErrGitLogFailed     error = CustomError{prefix: errGitPrefix, code: gitLogFailed}
)

func GitCommandFailed(err error, ctx context) error {
	return newError(errGitPrefix, gitCommandFailed, err, ctx)
}

func CommitFailed(err error, ctx context) error {
	return newError(errGitPrefix, gitCommitFailed, err, ctx)
}

func TagFailed(err error, ctx context) error {
	return newError(errGitPrefix, gitTagFailed, err, ctx)
}

func PushFailed(err error, ctx context) error {
	return newError(errGitPrefix, gitPushFailed, err, ctx)
}

func ResetFailed(err error, ctx context) error {
	return newError(errGitPrefix, gitResetFailed, err, ctx)
}

func LogFailed(err error, ctx context) error {
	return newError(errGitPrefix, gitLogFailed, err, ctx)
}
