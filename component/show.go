package component

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"opencsg.com/csghub-release/builder/git"
	"opencsg.com/csghub-release/builder/github"
	"opencsg.com/csghub-release/common/config"
	"opencsg.com/csghub-release/common/errorx"
	"opencsg.com/csghub-release/common/types"
)

type ShowComponent interface {
	// Show reports a release tag, the latest one when tag is empty.
	Show(ctx context.Context, tag string) (*types.ReleaseInfo, error)
}

type showComponentImpl struct {
	repo   git.Repository
	github github.Client
	logger *slog.Logger
}

func NewShowComponent(cfg *config.Config, gh github.Client, logger *slog.Logger) ShowComponent {
	if logger == nil {
		logger = slog.Default()
	}
	return &showComponentImpl{
		repo:   git.NewRepository(git.NewExecutor(cfg.WorkDir, logger), cfg.Git.Remote, logger),
		github: gh,
		logger: logger,
	}
}

func (c *showComponentImpl) tagPointer(ctx context.Context, tag string) (*types.TagPointer, error) {
	if tag != "" {
		c.logger.InfoContext(ctx, fmt.Sprintf("looking up explicit %q tag...", tag))
		pointer, err := c.repo.TagPointer(ctx, tag)
		if err != nil {
			return nil, err
		}
		if pointer == nil {
			return nil, errorx.TagNotFound(errorx.Ctx().Set("tag", tag))
		}
		return pointer, nil
	}

	c.logger.InfoContext(ctx, "looking up the latest release tag...")
	tags, err := c.repo.Tags(ctx)
	if err != nil {
		return nil, err
	}
	latest := LatestReleaseTag(tags)
	if latest == "" {
		return nil, errorx.TagNotFound(errorx.Ctx().Set("reason", "repository has no releases"))
	}
	pointer, err := c.repo.TagPointer(ctx, latest)
	if err != nil {
		return nil, err
	}
	if pointer == nil {
		return nil, errorx.TagNotFound(errorx.Ctx().Set("tag", latest))
	}
	return pointer, nil
}

func (c *showComponentImpl) Show(ctx context.Context, tag string) (*types.ReleaseInfo, error) {
	pointer, err := c.tagPointer(ctx, tag)
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, fmt.Sprintf("found tag %q!", pointer.Tag))

	commit, err := c.repo.Commit(ctx, pointer.Hash)
	if err != nil {
		return nil, err
	}
	if commit == nil {
		return nil, errorx.TagNotFound(errorx.Ctx().Set("tag", pointer.Tag).Set("hash", pointer.Hash))
	}

	commitLog, err := c.repo.Show(ctx, commit.Hash)
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, commitLog)

	repo, err := c.repo.Info(ctx)
	if err != nil {
		return nil, err
	}
	release, err := c.github.GetReleaseByTag(ctx, repo, pointer.Tag)
	if err != nil {
		return nil, err
	}

	info := &types.ReleaseInfo{Pointer: *pointer, CommitLog: commitLog, Status: types.ReleaseStatusUnpublished}
	if release != nil {
		info.Status = types.ReleaseStatusPublic
		if release.Draft {
			info.Status = types.ReleaseStatusDraft
		}
		info.URL = release.HTMLURL
		info.Prerelease = release.Prerelease
		info.CreatedAt = release.PublishedAt
		if info.CreatedAt == nil {
			createdAt := release.CreatedAt
			info.CreatedAt = &createdAt
		}
	}

	c.logger.InfoContext(ctx, fmt.Sprintf("release status: %s", info.Status))
	if release == nil {
		c.logger.WarnContext(ctx, fmt.Sprintf("release %q is not published to GitHub!", pointer.Tag))
		return info, nil
	}
	c.logger.InfoContext(ctx, fmt.Sprintf("release url: %s", info.URL))
	c.logger.InfoContext(ctx, fmt.Sprintf("release created %s", humanize.Time(*info.CreatedAt)))
	return info, nil
}
