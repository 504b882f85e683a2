package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"opencsg.com/csghub-release/builder/rpc"
	"opencsg.com/csghub-release/common/config"
	"opencsg.com/csghub-release/common/errorx"
	"opencsg.com/csghub-release/common/types"
)

const DefaultAPIURL = "https://api.github.com"

// Client talks to the GitHub REST and GraphQL APIs on behalf of one token.
type Client interface {
	CreateRelease(ctx context.Context, repo types.RepoInfo, req types.CreateGitHubReleaseReq) (*types.GitHubRelease, error)
	// GetReleaseByTag returns nil when the release does not exist.
	GetReleaseByTag(ctx context.Context, repo types.RepoInfo, tag string) (*types.GitHubRelease, error)
	// GetLatestRelease returns nil when the repository has no release.
	GetLatestRelease(ctx context.Context, repo types.RepoInfo) (*types.GitHubRelease, error)
	DeleteRelease(ctx context.Context, repo types.RepoInfo, id int64) error
	GetIssue(ctx context.Context, repo types.RepoInfo, id string) (*types.GitHubIssue, error)
	CreateComment(ctx context.Context, repo types.RepoInfo, id string, body string) error
	// GetCommitAuthors returns nil when the id is not a pull request.
	GetCommitAuthors(ctx context.Context, repo types.RepoInfo, pullRequestID string) (*types.PullRequestAuthors, error)
	// TokenScopes returns the OAuth scopes granted to the token. Fine-grained
	// tokens have none.
	TokenScopes(ctx context.Context) ([]string, error)
}

type client struct {
	http    *rpc.HttpClient
	graphQL *rpc.HttpClient
	logger  *slog.Logger
}

func NewClient(cfg *config.Config, logger *slog.Logger) (Client, error) {
	if cfg.GitHub.Token == "" {
		return nil, errorx.MissingToken(errorx.Ctx().Set("env", "GITHUB_TOKEN"))
	}
	if logger == nil {
		logger = slog.Default()
	}
	apiURL := strings.TrimRight(cfg.GitHub.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	delay := time.Duration(cfg.GitHub.RetryDelayMillis) * time.Millisecond
	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHub.Token}))
	limiter := newLimiter(cfg.GitHub.RequestsPerSecond)
	hc := rpc.NewHttpClient(apiURL,
		rpc.WithHeader("Accept", "application/vnd.github+json"),
		rpc.WithHeader("X-GitHub-Api-Version", "2022-11-28"),
	).WithHTTPClient(httpClient).
		WithRateLimit(limiter).
		WithRetry(cfg.GitHub.RetryCount).
		WithDelay(delay).
		WithLogger(logger)
	gc := rpc.NewHttpClient(graphQLURL(apiURL)).
		WithHTTPClient(httpClient).
		WithRateLimit(limiter).
		WithDelay(delay).
		WithLogger(logger)
	return &client{http: hc, graphQL: gc, logger: logger}, nil
}

// newLimiter paces REST and GraphQL calls together. A non-positive rate
// disables pacing.
func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(perSecond), int(math.Ceil(perSecond)))
}

// graphQLURL maps a REST base URL to its GraphQL endpoint. GitHub Enterprise
// serves REST under /api/v3 and GraphQL under /api/graphql.
func graphQLURL(apiURL string) string {
	if strings.HasSuffix(apiURL, "/api/v3") {
		return strings.TrimSuffix(apiURL, "/v3") + "/graphql"
	}
	return apiURL + "/graphql"
}

func repoPath(repo types.RepoInfo) string {
	return fmt.Sprintf("/repos/%s/%s", repo.Owner, repo.Name)
}

func (c *client) CreateRelease(ctx context.Context, repo types.RepoInfo, req types.CreateGitHubReleaseReq) (*types.GitHubRelease, error) {
	c.logger.InfoContext(ctx, fmt.Sprintf("creating a new GitHub release at \"%s\"...", repo.Slug()))

	var release types.GitHubRelease
	_, err := c.http.Do(ctx, http.MethodPost, repoPath(repo)+"/releases", req, &release, http.StatusCreated)
	if err != nil {
		if errorx.IsHTTPStatus(err, http.StatusUnauthorized) {
			return nil, errorx.InvalidToken(
				errors.New("provided GITHUB_TOKEN does not have sufficient permissions to create a release"),
				errorx.Ctx().Set("repo", repo.Slug()),
			)
		}
		return nil, errorx.CreateReleaseFailed(err, errorx.Ctx().Set("repo", repo.Slug()).Set("tag", req.TagName))
	}
	return &release, nil
}

func (c *client) GetReleaseByTag(ctx context.Context, repo types.RepoInfo, tag string) (*types.GitHubRelease, error) {
	return c.getRelease(ctx, repoPath(repo)+"/releases/tags/"+tag)
}

func (c *client) GetLatestRelease(ctx context.Context, repo types.RepoInfo) (*types.GitHubRelease, error) {
	return c.getRelease(ctx, repoPath(repo)+"/releases/latest")
}

func (c *client) getRelease(ctx context.Context, path string) (*types.GitHubRelease, error) {
	var release types.GitHubRelease
	if err := c.http.Get(ctx, path, &release); err != nil {
		if errorx.IsHTTPStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, errorx.GitHubRequestFailed(err, errorx.Ctx().Set("path", path))
	}
	return &release, nil
}

func (c *client) DeleteRelease(ctx context.Context, repo types.RepoInfo, id int64) error {
	path := fmt.Sprintf("%s/releases/%d", repoPath(repo), id)
	if err := c.http.Delete(ctx, path); err != nil {
		return errorx.GitHubRequestFailed(err, errorx.Ctx().Set("path", path))
	}
	return nil
}

func (c *client) GetIssue(ctx context.Context, repo types.RepoInfo, id string) (*types.GitHubIssue, error) {
	path := fmt.Sprintf("%s/issues/%s", repoPath(repo), id)
	var issue types.GitHubIssue
	if err := c.http.Get(ctx, path, &issue); err != nil {
		return nil, errorx.GitHubRequestFailed(err, errorx.Ctx().Set("path", path))
	}
	return &issue, nil
}

func (c *client) CreateComment(ctx context.Context, repo types.RepoInfo, id string, body string) error {
	path := fmt.Sprintf("%s/issues/%s/comments", repoPath(repo), id)
	req := map[string]string{"body": body}
	if _, err := c.http.Do(ctx, http.MethodPost, path, req, nil, http.StatusCreated); err != nil {
		return errorx.CommentFailed(err, errorx.Ctx().Set("issue", id))
	}
	return nil
}

const commitAuthorsQuery = `query GetCommitAuthors($owner: String!, $repo: String!, $pullRequestId: Int!) {
  repository(owner: $owner, name: $repo) {
    pullRequest(number: $pullRequestId) {
      url
      author {
        login
      }
      commits(first: 100) {
        nodes {
          commit {
            authors(first: 100) {
              nodes {
                user {
                  login
                }
              }
            }
          }
        }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func (c *client) GetCommitAuthors(ctx context.Context, repo types.RepoInfo, pullRequestID string) (*types.PullRequestAuthors, error) {
	number, err := cast.ToIntE(strings.TrimPrefix(pullRequestID, "#"))
	if err != nil {
		return nil, errorx.GraphQLFailed(fmt.Errorf("invalid pull request id %q: %w", pullRequestID, err), nil)
	}

	req := graphQLRequest{
		Query: commitAuthorsQuery,
		Variables: map[string]any{
			"owner":         repo.Owner,
			"repo":          repo.Name,
			"pullRequestId": number,
		},
	}
	var buf bytes.Buffer
	if err := c.graphQL.Post(ctx, "", req, &buf); err != nil {
		return nil, errorx.GraphQLFailed(err, errorx.Ctx().Set("pull_request", pullRequestID))
	}

	resp := gjson.ParseBytes(buf.Bytes())
	if errs := resp.Get("errors"); errs.Exists() && len(errs.Array()) > 0 {
		messages := make([]string, 0, len(errs.Array()))
		notFound := true
		for _, e := range errs.Array() {
			messages = append(messages, e.Get("message").String())
			notFound = notFound && e.Get("type").String() == "NOT_FOUND"
		}
		// the number belongs to a plain issue
		if notFound {
			return nil, nil
		}
		return nil, errorx.GraphQLFailed(errors.New(strings.Join(messages, "; ")), errorx.Ctx().Set("pull_request", pullRequestID))
	}

	pr := resp.Get("data.repository.pullRequest")
	if !pr.Exists() || pr.Type == gjson.Null {
		return nil, nil
	}

	authors := &types.PullRequestAuthors{
		URL:    pr.Get("url").String(),
		Author: pr.Get("author.login").String(),
	}
	for _, login := range pr.Get("commits.nodes.#.commit.authors.nodes.#.user.login").Array() {
		for _, l := range login.Array() {
			if l.String() != "" {
				authors.CommitAuthors = append(authors.CommitAuthors, l.String())
			}
		}
	}
	return authors, nil
}

func (c *client) TokenScopes(ctx context.Context) ([]string, error) {
	header, err := c.http.Do(ctx, http.MethodGet, "/", nil, nil, http.StatusOK)
	if err != nil {
		if errorx.IsHTTPStatus(err, http.StatusUnauthorized) {
			return nil, errorx.InvalidToken(err, nil)
		}
		return nil, errorx.GitHubRequestFailed(err, errorx.Ctx().Set("path", "/"))
	}
	var scopes []string
	for _, scope := range strings.Split(header.Get("X-OAuth-Scopes"), ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			scopes = append(scopes, scope)
		}
	}
	return scopes, nil
}
