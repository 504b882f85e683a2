package component

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
	"opencsg.com/csghub-release/common/types"
)

// commit types describing internal changes, never listed in release notes
var ignoredCommitTypes = map[string]struct{}{
	"chore": {},
}

// GroupCommitsByReleaseType sorts commits into note categories, keeping
// their order. A breaking commit is listed only under breaking changes.
func GroupCommitsByReleaseType(commits []types.ParsedCommit) types.GroupedCommits {
	groups := types.GroupedCommits{}
	seen := map[string]struct{}{}
	for _, commit := range commits {
		if commit.Type == "" || commit.IsMerge() {
			continue
		}
		if _, ok := ignoredCommitTypes[commit.Type]; ok {
			continue
		}

		noteType := types.ReleaseNoteType(commit.Type)
		if IsBreakingChange(commit) {
			noteType = types.ReleaseNoteBreaking
		} else if noteType != types.ReleaseNoteFeat && noteType != types.ReleaseNoteFix {
			continue
		}

		key := commit.Hash + "\x00" + commit.Header
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		groups[noteType] = append(groups[noteType], commit)
	}
	return groups
}

type ReleaseNotesComponent interface {
	// ReleaseNotes groups commits and resolves their contributors.
	ReleaseNotes(ctx context.Context, repo types.RepoInfo, commits []types.ParsedCommit) (types.ReleaseNotes, error)
	// InjectContributors resolves the authors of every grouped commit. A
	// commit whose authors cannot be resolved is left out.
	InjectContributors(ctx context.Context, repo types.RepoInfo, groups types.GroupedCommits) (types.ReleaseNotes, error)
}

type releaseNotesComponentImpl struct {
	contributors ContributorComponent
	logger       *slog.Logger
}

func NewReleaseNotesComponent(contributors ContributorComponent, logger *slog.Logger) ReleaseNotesComponent {
	if logger == nil {
		logger = slog.Default()
	}
	return &releaseNotesComponentImpl{contributors: contributors, logger: logger}
}

func (c *releaseNotesComponentImpl) ReleaseNotes(ctx context.Context, repo types.RepoInfo, commits []types.ParsedCommit) (types.ReleaseNotes, error) {
	return c.InjectContributors(ctx, repo, GroupCommitsByReleaseType(commits))
}

func (c *releaseNotesComponentImpl) InjectContributors(ctx context.Context, repo types.RepoInfo, groups types.GroupedCommits) (types.ReleaseNotes, error) {
	type task struct {
		noteType types.ReleaseNoteType
		index    int
	}
	var tasks []task
	results := make(map[types.ReleaseNoteType][]*types.ReleaseNoteCommit, len(groups))
	for _, noteType := range types.ReleaseNoteTypes {
		commits := groups[noteType]
		if len(commits) == 0 {
			continue
		}
		results[noteType] = make([]*types.ReleaseNoteCommit, len(commits))
		for i := range commits {
			tasks = append(tasks, task{noteType: noteType, index: i})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for _, t := range tasks {
		commit := groups[t.noteType][t.index]
		slot := results[t.noteType]
		g.Go(func() error {
			authors, err := c.contributors.CommitAuthors(gctx, repo, commit)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.logger.WarnContext(gctx, "failed to resolve commit authors, omitting commit from release notes",
					slog.String("commit", commit.Hash),
					slog.Any("error", err),
				)
				return nil
			}
			slot[t.index] = &types.ReleaseNoteCommit{ParsedCommit: commit, Authors: authors}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	notes := types.ReleaseNotes{}
	for noteType, slot := range results {
		for _, commit := range slot {
			if commit != nil {
				notes[noteType] = append(notes[noteType], *commit)
			}
		}
	}
	return notes, nil
}

// ToMarkdown renders release notes under a "## {tag} ({date})" heading.
// Sections without commits are omitted.
func ToMarkdown(rc types.ReleaseContext, notes types.ReleaseNotes) string {
	markdown := []string{
		"## " + rc.NextRelease.Tag() + " (" + rc.NextRelease.PublishedAt.UTC().Format("2006-01-02") + ")",
	}

	sections := map[types.ReleaseNoteType][]string{}
	for _, noteType := range types.ReleaseNoteTypes {
		for _, commit := range notes[noteType] {
			sections[noteType] = append(sections[noteType], releaseItem(commit, noteType == types.ReleaseNoteBreaking)...)
		}
	}

	if len(sections[types.ReleaseNoteBreaking]) > 0 {
		markdown = append(markdown, "", "### ⚠️ BREAKING CHANGES")
		markdown = append(markdown, sections[types.ReleaseNoteBreaking]...)
	}
	if len(sections[types.ReleaseNoteFeat]) > 0 {
		markdown = append(markdown, "", "### Features", "")
		markdown = append(markdown, sections[types.ReleaseNoteFeat]...)
	}
	if len(sections[types.ReleaseNoteFix]) > 0 {
		markdown = append(markdown, "", "### Bug Fixes", "")
		markdown = append(markdown, sections[types.ReleaseNoteFix]...)
	}

	return strings.Join(markdown, "\n")
}

// releaseItem renders one list entry. Breaking entries with notes open with
// a blank line and carry every note text as its own paragraph.
func releaseItem(commit types.ReleaseNoteCommit, withNotes bool) []string {
	if commit.Subject == "" {
		return nil
	}

	parts := []string{"-"}
	if commit.Scope != "" {
		parts = append(parts, "**"+commit.Scope+":**")
	}
	parts = append(parts, commit.Subject, "("+commit.Hash+")")
	if authors := PrintAuthors(commit.Authors); authors != "" {
		parts = append(parts, authors)
	}

	lines := []string{strings.Join(parts, " ")}
	if withNotes && len(commit.Notes) > 0 {
		lines = append([]string{""}, lines...)
		for _, note := range commit.Notes {
			lines = append(lines, "", note.Text)
		}
	}
	return lines
}

// PrintAuthors mentions every login, "@a @b", or returns "" when there are none.
func PrintAuthors(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	mentions := make([]string, 0, len(authors))
	for _, login := range authors {
		mentions = append(mentions, "@"+login)
	}
	return strings.Join(mentions, " ")
}
