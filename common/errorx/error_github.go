package errorx

const errGitHubPrefix = "GH-ERR"

const (
	githubRequestFailed = iota
	githubCreateReleaseFailed
	githubGraphQLFailed
	githubCommentFailed
)

var (
	// --- GH-ERR-xxx: GitHub REST and GraphQL API ---
	ErrGitHubRequestFailed       error = CustomError{prefix: errGitHubPrefix, code: githubRequestFailed}
	ErrGitHubCreateReleaseFailed error = CustomError{prefix: errGitHubPrefix, code: githubCreateReleaseFailed}
	ErrGitHubGraphQLFailed       error = CustomError{prefix: errGitHubPrefix, code: githubGraphQLFailed}
	ErrGitHubCommentFailed       error = CustomError{prefix: errGitHubPrefix, code: githubCommentFailed}
)

func GitHubRequestFailed(err error, ctx context) error {
	return newError(errGitHubPrefix, githubRequestFailed, err, ctx)
}

func CreateReleaseFailed(err error, ctx context) error {
	return newError(errGitHubPrefix, githubCreateReleaseFailed, err, ctx)
}

func GraphQLFailed(err error, ctx context) error {
	return newError(errGitHubPrefix, githubGraphQLFailed, err, ctx)
}

func CommentFailed(err error, ctx context) error {
	return newError(errGitHubPrefix, githubCommentFailed, err, ctx)
}
