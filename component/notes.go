package component

import (
	"context"
	"fmt"
	"log/slog"

	"opencsg.com/csghub-release/builder/git"
	"opencsg.com/csghub-release/builder/github"
	"opencsg.com/csghub-release/common/config"
	"opencsg.com/csghub-release/common/errorx"
	"opencsg.com/csghub-release/common/types"
	"opencsg.com/csghub-release/component/commitparser"
)

type NotesResult struct {
	Context    types.ReleaseContext
	Notes      string
	ReleaseURL string
}

type NotesComponent interface {
	// CreateReleaseNotes creates the GitHub release of an existing release
	// tag that was never published to GitHub.
	CreateReleaseNotes(ctx context.Context, tag string) (*NotesResult, error)
}

type notesComponentImpl struct {
	repo   git.Repository
	github github.Client
	notes  ReleaseNotesComponent
	logger *slog.Logger
}

func NewNotesComponent(cfg *config.Config, gh github.Client, logger *slog.Logger) NotesComponent {
	if logger == nil {
		logger = slog.Default()
	}
	return &notesComponentImpl{
		repo:   git.NewRepository(git.NewExecutor(cfg.WorkDir, logger), cfg.Git.Remote, logger),
		github: gh,
		notes:  NewReleaseNotesComponent(NewContributorComponent(gh, logger), logger),
		logger: logger,
	}
}

func (c *notesComponentImpl) CreateReleaseNotes(ctx context.Context, tag string) (*NotesResult, error) {
	tag = NormalizeTag(tag)
	repo, err := c.repo.Info(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := c.github.GetReleaseByTag(ctx, repo, tag)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		c.logger.WarnContext(ctx, fmt.Sprintf("found existing GitHub release for %q: %s", tag, existing.HTMLURL))
		return nil, errorx.ReleaseExists(errorx.Ctx().Set("tag", tag).Set("url", existing.HTMLURL))
	}

	c.logger.InfoContext(ctx, fmt.Sprintf("creating GitHub release for version %q in %q...", tag, repo.Slug()))

	pointer, err := c.repo.TagPointer(ctx, tag)
	if err != nil {
		return nil, err
	}
	if pointer == nil {
		return nil, errorx.TagNotFound(errorx.Ctx().Set("tag", tag))
	}
	c.logger.InfoContext(ctx, fmt.Sprintf("found release tag %q (%s)", pointer.Tag, pointer.Hash))

	releaseCommit, err := c.repo.Commit(ctx, pointer.Hash)
	if err != nil {
		return nil, err
	}
	if releaseCommit == nil {
		return nil, errorx.TagNotFound(errorx.Ctx().Set("tag", tag).Set("hash", pointer.Hash))
	}

	tags, err := c.repo.Tags(ctx)
	if err != nil {
		return nil, err
	}
	var previous *types.TagPointer
	if prevTag := PreviousReleaseTag(tags, pointer.Tag); prevTag != "" {
		previous, err = c.repo.TagPointer(ctx, prevTag)
		if err != nil {
			return nil, err
		}
	}

	var since string
	if previous != nil {
		since = previous.Hash
		c.logger.InfoContext(ctx, fmt.Sprintf("found preceding release %q (%s)", previous.Tag, previous.Hash))
	} else {
		c.logger.InfoContext(ctx, fmt.Sprintf("found no released preceding %q: analyzing all commits until %q...", pointer.Tag, pointer.Hash))
	}

	raw, err := c.repo.Commits(ctx, since, pointer.Hash)
	if err != nil {
		return nil, err
	}
	commits := commitparser.Parse(raw)

	rc := types.ReleaseContext{
		Repo:          repo,
		LatestRelease: previous,
		NextRelease: types.NextRelease{
			Version:     VersionFromTag(pointer.Tag),
			PublishedAt: releaseCommit.Author.Date,
		},
	}
	notes, err := c.notes.ReleaseNotes(ctx, repo, commits)
	if err != nil {
		return nil, err
	}
	markdown := ToMarkdown(rc, notes)
	c.logger.InfoContext(ctx, "generated release notes:\n"+markdown)

	release, err := c.github.CreateRelease(ctx, repo, types.CreateGitHubReleaseReq{
		TagName: pointer.Tag,
		Name:    pointer.Tag,
		Body:    markdown,
	})
	if err != nil {
		return nil, err
	}
	c.logger.InfoContext(ctx, "created GitHub release: "+release.HTMLURL)

	return &NotesResult{Context: rc, Notes: markdown, ReleaseURL: release.HTMLURL}, nil
}
