package types

import "time"

type GitHubRelease struct {
	ID          int64      `json:"id"`
	TagName     string     `json:"tag_name"`
	Name        string     `json:"name"`
	Body        string     `json:"body"`
	HTMLURL     string     `json:"html_url"`
	Draft       bool       `json:"draft"`
	Prerelease  bool       `json:"prerelease"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at"`
}

type CreateGitHubReleaseReq struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
	// MakeLatest is "true", "false" or "legacy"; empty leaves the GitHub default.
	MakeLatest string `json:"make_latest,omitempty"`
}

type GitHubUser struct {
	Login string `json:"login"`
}

// GitHubIssue is an issue or a pull request, GitHub serves both from the issues endpoint.
type GitHubIssue struct {
	Number      int64              `json:"number"`
	HTMLURL     string             `json:"html_url"`
	Body        *string            `json:"body"`
	User        *GitHubUser        `json:"user"`
	PullRequest *GitHubPullRequest `json:"pull_request"`
}

type GitHubPullRequest struct {
	URL     string `json:"url,omitempty"`
	HTMLURL string `json:"html_url,omitempty"`
}

func (i GitHubIssue) IsPullRequest() bool {
	return i.PullRequest != nil
}

// PullRequestAuthors is the author of a pull request plus every commit author in it.
type PullRequestAuthors struct {
	URL           string   `json:"url"`
	Author        string   `json:"author"`
	CommitAuthors []string `json:"commit_authors"`
}
