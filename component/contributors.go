package component

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"opencsg.com/csghub-release/builder/github"
	"opencsg.com/csghub-release/common/types"
)

type ContributorComponent interface {
	// CommitAuthors returns GitHub logins of everyone who contributed to the
	// pull requests referenced by commit. Lookups that fail are skipped.
	CommitAuthors(ctx context.Context, repo types.RepoInfo, commit types.ParsedCommit) ([]string, error)
}

type contributorComponentImpl struct {
	github github.Client
	logger *slog.Logger
}

func NewContributorComponent(gh github.Client, logger *slog.Logger) ContributorComponent {
	if logger == nil {
		logger = slog.Default()
	}
	return &contributorComponentImpl{github: gh, logger: logger}
}

func (c *contributorComponentImpl) CommitAuthors(ctx context.Context, repo types.RepoInfo, commit types.ParsedCommit) ([]string, error) {
	refs := make([]string, 0, len(commit.References))
	for _, ref := range commit.References {
		if slug := ref.Slug(); slug != "" && slug != repo.Slug() {
			continue
		}
		if ref.Issue != "" {
			refs = append(refs, ref.Issue)
		}
	}
	if len(refs) == 0 {
		return []string{}, nil
	}

	results := make([]*types.PullRequestAuthors, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for i, id := range refs {
		g.Go(func() error {
			authors, err := c.github.GetCommitAuthors(gctx, repo, id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.logger.WarnContext(gctx, "failed to resolve pull request authors",
					slog.String("pull_request", id),
					slog.String("commit", commit.Hash),
					slog.Any("error", err),
				)
				return nil
			}
			results[i] = authors
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logins := newOrderedSet()
	for _, r := range results {
		if r == nil {
			continue
		}
		logins.add(r.Author)
		for _, login := range r.CommitAuthors {
			logins.add(login)
		}
	}
	if logins.items == nil {
		return []string{}, nil
	}
	return logins.items, nil
}
