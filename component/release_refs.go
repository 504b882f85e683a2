package component

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"opencsg.com/csghub-release/builder/github"
	"opencsg.com/csghub-release/common/types"
	"opencsg.com/csghub-release/component/commitparser"
)

// maxConcurrentRequests bounds fan-out against the GitHub API.
const maxConcurrentRequests = 5

type ReleaseRefsComponent interface {
	// ReleaseRefs returns ids of every issue and pull request related to the
	// commits, in discovery order.
	ReleaseRefs(ctx context.Context, repo types.RepoInfo, commits []types.ParsedCommit) ([]string, error)
}

type releaseRefsComponentImpl struct {
	github github.Client
	logger *slog.Logger
}

func NewReleaseRefsComponent(gh github.Client, logger *slog.Logger) ReleaseRefsComponent {
	if logger == nil {
		logger = slog.Default()
	}
	return &releaseRefsComponentImpl{github: gh, logger: logger}
}

// orderedSet keeps the first insertion position of every id.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}}
}

func (s *orderedSet) add(id string) bool {
	if id == "" {
		return false
	}
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.items = append(s.items, id)
	return true
}

// closingIssueIDs returns the ids closed by text within repo. References to
// other repositories are ignored.
func closingIssueIDs(text string, repo types.RepoInfo) []string {
	var ids []string
	for _, ref := range commitparser.ClosingReferences(text) {
		if slug := ref.Slug(); slug == "" || slug == repo.Slug() {
			ids = append(ids, ref.Issue)
		}
	}
	return ids
}

func (c *releaseRefsComponentImpl) ReleaseRefs(ctx context.Context, repo types.RepoInfo, commits []types.ParsedCommit) ([]string, error) {
	ids := newOrderedSet()
	for _, commit := range commits {
		for _, ref := range commit.References {
			if slug := ref.Slug(); slug != "" && slug != repo.Slug() {
				continue
			}
			ids.add(ref.Issue)
		}
		if commit.Body != "" {
			for _, id := range closingIssueIDs(commit.Body, repo) {
				ids.add(id)
			}
		}
	}

	direct := append([]string(nil), ids.items...)
	issues := make([]*types.GitHubIssue, len(direct))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for i, id := range direct {
		g.Go(func() error {
			issue, err := c.github.GetIssue(gctx, repo, id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.logger.WarnContext(gctx, "failed to fetch referenced issue", slog.String("id", id), slog.Any("error", err))
				return nil
			}
			issues[i] = issue
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Only pull requests close other issues by reference on GitHub.
	for _, issue := range issues {
		if issue == nil || !issue.IsPullRequest() || issue.Body == nil || *issue.Body == "" {
			continue
		}
		for _, id := range closingIssueIDs(*issue.Body, repo) {
			ids.add(id)
		}
	}

	return ids.items, nil
}
