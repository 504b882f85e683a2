package component

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"golang.org/x/sync/errgroup"
	"opencsg.com/csghub-release/builder/git"
	"opencsg.com/csghub-release/builder/github"
	"opencsg.com/csghub-release/builder/manifest"
	"opencsg.com/csghub-release/common/config"
	"opencsg.com/csghub-release/common/errorx"
	rlog "opencsg.com/csghub-release/common/log"
	"opencsg.com/csghub-release/common/types"
	"opencsg.com/csghub-release/component/commitparser"
)

const (
	stateGatherRepoInfo       = "gather_repo_info"
	stateFindLatestRelease    = "find_latest_release"
	stateCollectCommits       = "collect_commits"
	stateResolveReleaseType   = "resolve_release_type"
	stateComputeNextVersion   = "compute_next_version"
	stateBumpManifest         = "bump_manifest"
	stateRunReleaseScript     = "run_release_script"
	stateCreateReleaseCommit  = "create_release_commit"
	stateCreateReleaseTag     = "create_release_tag"
	statePushToRemote         = "push_to_remote"
	stateGenerateReleaseNotes = "generate_release_notes"
	stateCreateRemoteRelease  = "create_remote_release"
	stateCommentOnIssues      = "comment_on_issues"

	stateCompleted            = string(types.PublishCompleted)
	stateCompletedDryRun      = string(types.PublishCompletedDryRun)
	stateAbortedNoCommits     = string(types.PublishAbortedNoCommits)
	stateAbortedNoVersionBump = string(types.PublishAbortedNoVersionBump)
	stateFailed               = string(types.PublishFailed)
)

const (
	eventNext          = "next"
	eventAbortNoCommit = "abort_no_commits"
	eventAbortNoBump   = "abort_no_version_bump"
	eventFail          = "fail"
	eventFinish        = "finish"
	eventFinishDryRun  = "finish_dry_run"
)

// pipeline lists the non-terminal states in execution order.
var pipeline = []string{
	stateGatherRepoInfo,
	stateFindLatestRelease,
	stateCollectCommits,
	stateResolveReleaseType,
	stateComputeNextVersion,
	stateBumpManifest,
	stateRunReleaseScript,
	stateCreateReleaseCommit,
	stateCreateReleaseTag,
	statePushToRemote,
	stateGenerateReleaseNotes,
	stateCreateRemoteRelease,
	stateCommentOnIssues,
}

func publishEvents() fsm.Events {
	events := make(fsm.Events, 0, len(pipeline)+5)
	for i := 0; i < len(pipeline)-1; i++ {
		events = append(events, fsm.EventDesc{Name: eventNext, Src: []string{pipeline[i]}, Dst: pipeline[i+1]})
	}
	return append(events,
		fsm.EventDesc{Name: eventAbortNoCommit, Src: []string{stateCollectCommits}, Dst: stateAbortedNoCommits},
		fsm.EventDesc{Name: eventAbortNoBump, Src: []string{stateResolveReleaseType}, Dst: stateAbortedNoVersionBump},
		fsm.EventDesc{Name: eventFail, Src: pipeline, Dst: stateFailed},
		fsm.EventDesc{Name: eventFinish, Src: []string{stateCommentOnIssues}, Dst: stateCompleted},
		fsm.EventDesc{Name: eventFinishDryRun, Src: []string{stateCommentOnIssues}, Dst: stateCompletedDryRun},
	)
}

func isTerminalState(state string) bool {
	switch state {
	case stateCompleted, stateCompletedDryRun, stateAbortedNoCommits, stateAbortedNoVersionBump, stateFailed:
		return true
	}
	return false
}

type PublishOptions struct {
	DryRun bool
	// Profile selects the release profile, DefaultProfileName when empty.
	Profile string
}

type PublishResult struct {
	RunID   string
	Outcome types.PublishOutcome
	// Reason explains an aborted or failed run.
	Reason     error
	Context    types.ReleaseContext
	Notes      string
	ReleaseURL string
}

type PublishComponent interface {
	// Publish releases the commits made since the latest release. The error
	// is non-nil only when the outcome is types.PublishFailed.
	Publish(ctx context.Context, opts PublishOptions) (*PublishResult, error)
}

type publishComponentImpl struct {
	repo          git.Repository
	exec          git.Executor
	manifest      manifest.Store
	github        github.Client
	refs          ReleaseRefsComponent
	notes         ReleaseNotesComponent
	releaseConfig *config.ReleaseConfig
	logger        *slog.Logger
	now           func() time.Time
}

func NewPublishComponent(cfg *config.Config, releaseConfig *config.ReleaseConfig, gh github.Client, logger *slog.Logger) PublishComponent {
	if logger == nil {
		logger = slog.Default()
	}
	exec := git.NewExecutor(cfg.WorkDir, logger)
	return &publishComponentImpl{
		repo:          git.NewRepository(exec, cfg.Git.Remote, logger),
		exec:          exec,
		manifest:      manifest.NewStore(cfg.ManifestPath()),
		github:        gh,
		refs:          NewReleaseRefsComponent(gh, logger),
		notes:         NewReleaseNotesComponent(NewContributorComponent(gh, logger), logger),
		releaseConfig: releaseConfig,
		logger:        logger,
		now:           time.Now,
	}
}

// publishRun is the state shared by the steps of one publish run.
type publishRun struct {
	opts    PublishOptions
	profile *config.Profile
	reverts *RevertStack

	branch      string
	preHead     string
	commits     []types.ParsedCommit
	releaseType types.ReleaseType
	packageName string
	context     types.ReleaseContext
	notes       string
	releaseURL  string
	err         error
}

type publishStep func(ctx context.Context, run *publishRun) (string, error)

func (c *publishComponentImpl) steps() map[string]publishStep {
	return map[string]publishStep{
		stateGatherRepoInfo:       c.gatherRepoInfo,
		stateFindLatestRelease:    c.findLatestRelease,
		stateCollectCommits:       c.collectCommits,
		stateResolveReleaseType:   c.resolveReleaseType,
		stateComputeNextVersion:   c.computeNextVersion,
		stateBumpManifest:         c.bumpManifest,
		stateRunReleaseScript:     c.runReleaseScript,
		stateCreateReleaseCommit:  c.createReleaseCommit,
		stateCreateReleaseTag:     c.createReleaseTag,
		statePushToRemote:         c.pushToRemote,
		stateGenerateReleaseNotes: c.generateReleaseNotes,
		stateCreateRemoteRelease:  c.createRemoteRelease,
		stateCommentOnIssues:      c.commentOnIssues,
	}
}

func (c *publishComponentImpl) Publish(ctx context.Context, opts PublishOptions) (*PublishResult, error) {
	runID := uuid.NewString()
	ctx = rlog.WithRunID(ctx, runID)
	result := &PublishResult{RunID: runID, Outcome: types.PublishFailed}

	profile, err := c.releaseConfig.Profile(opts.Profile)
	if err != nil {
		result.Reason = err
		return result, err
	}
	if err := github.ValidateAccessToken(ctx, c.github, c.logger); err != nil {
		result.Reason = err
		return result, err
	}

	run := &publishRun{opts: opts, profile: profile, reverts: NewRevertStack(c.logger)}
	machine := fsm.NewFSM(stateGatherRepoInfo, publishEvents(), fsm.Callbacks{
		"enter_state": func(ctx context.Context, e *fsm.Event) {
			c.logger.DebugContext(ctx, "publish state changed", slog.String("from", e.Src), slog.String("to", e.Dst), slog.String("event", e.Event))
		},
		"enter_" + stateFailed: func(ctx context.Context, e *fsm.Event) {
			c.rollback(ctx, run, e.Src)
		},
		"enter_" + stateCompleted: func(ctx context.Context, e *fsm.Event) {
			c.logger.InfoContext(ctx, fmt.Sprintf("release %q completed!", run.context.NextRelease.Tag()))
		},
		"enter_" + stateCompletedDryRun: func(ctx context.Context, e *fsm.Event) {
			c.logger.WarnContext(ctx, fmt.Sprintf("release %q completed in dry-run mode!", run.context.NextRelease.Tag()))
		},
	})

	// The machine runs on a context that outlives cancellation, so a run
	// interrupted mid-pipeline still reaches the failed state and rolls back.
	machineCtx := context.WithoutCancel(ctx)
	steps := c.steps()
	for !isTerminalState(machine.Current()) {
		state := machine.Current()
		var (
			event string
			err   error
		)
		if err = ctx.Err(); err == nil {
			event, err = steps[state](ctx, run)
		}
		if err != nil {
			run.err = err
			event = eventFail
		}
		if err := machine.Event(machineCtx, event); err != nil {
			return result, fmt.Errorf("publish state machine failed to leave %q on %q: %w", state, event, err)
		}
	}

	result.Outcome = types.PublishOutcome(machine.Current())
	result.Context = run.context
	result.Notes = run.notes
	result.ReleaseURL = run.releaseURL
	result.Reason = run.err
	if result.Outcome.Failed() {
		return result, run.err
	}
	return result, nil
}

// rollback undoes every side effect recorded so far, newest first.
func (c *publishComponentImpl) rollback(ctx context.Context, run *publishRun, failedState string) {
	c.logger.ErrorContext(ctx, "release failed", slog.String("step", failedState), slog.Any("error", run.err))
	if run.reverts.Len() == 0 {
		return
	}

	c.logger.InfoContext(ctx, "reverting release changes...")
	if err := run.reverts.Unwind(context.WithoutCancel(ctx)); err != nil {
		c.logger.ErrorContext(ctx, "failed to revert some release changes, manual cleanup may be required", slog.Any("error", err))
		run.err = errors.Join(run.err, err)
	} else {
		c.logger.InfoContext(ctx, "rolled back release changes")
	}
	run.err = errorx.RolledBack(run.err, errorx.Ctx().Set("step", failedState))
}

func (c *publishComponentImpl) gatherRepoInfo(ctx context.Context, run *publishRun) (string, error) {
	repo, err := c.repo.Info(ctx)
	if err != nil {
		return "", err
	}
	branch, err := c.repo.CurrentBranch(ctx)
	if err != nil {
		return "", err
	}
	head, err := c.repo.Head(ctx)
	if err != nil {
		return "", err
	}
	run.context.Repo = repo
	run.branch = branch
	run.preHead = head

	c.logger.InfoContext(ctx, fmt.Sprintf("preparing release for %q from branch %q...", repo.Slug(), branch))
	return eventNext, nil
}

func (c *publishComponentImpl) findLatestRelease(ctx context.Context, run *publishRun) (string, error) {
	tags, err := c.repo.Tags(ctx)
	if err != nil {
		return "", err
	}
	latest := LatestReleaseTag(tags)
	if latest == "" {
		c.logger.InfoContext(ctx, "found no previous releases, creating the first one...")
		return eventNext, nil
	}

	pointer, err := c.repo.TagPointer(ctx, latest)
	if err != nil {
		return "", err
	}
	if pointer == nil {
		return "", errorx.TagNotFound(errorx.Ctx().Set("tag", latest))
	}
	run.context.LatestRelease = pointer
	c.logger.InfoContext(ctx, fmt.Sprintf("found latest release: %s (%s)", pointer.Tag, pointer.Hash))
	return eventNext, nil
}

func (c *publishComponentImpl) collectCommits(ctx context.Context, run *publishRun) (string, error) {
	var since string
	if run.context.LatestRelease != nil {
		since = run.context.LatestRelease.Hash
	}
	raw, err := c.repo.Commits(ctx, since, git.HEAD)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		run.err = errorx.ErrNoCommits
		c.logger.WarnContext(ctx, "no new commits since the latest release, skipping...")
		return eventAbortNoCommit, nil
	}

	run.commits = commitparser.Parse(raw)
	lines := make([]string, 0, len(run.commits))
	for _, commit := range run.commits {
		lines = append(lines, fmt.Sprintf("  - %s %s", commit.Hash, commit.Header))
	}
	c.logger.InfoContext(ctx, fmt.Sprintf("found %d new %s:\n%s", len(raw), pluralize("commit", len(raw)), strings.Join(lines, "\n")))
	return eventNext, nil
}

func (c *publishComponentImpl) resolveReleaseType(ctx context.Context, run *publishRun) (string, error) {
	run.releaseType = NextReleaseType(run.commits, ReleaseTypeOptions{Prerelease: run.profile.Prerelease})
	if run.releaseType == types.ReleaseTypeNone {
		run.err = errorx.ErrNoVersionBump
		c.logger.WarnContext(ctx, "committed changes do not bump the version, skipping...")
		return eventAbortNoBump, nil
	}
	return eventNext, nil
}

func (c *publishComponentImpl) computeNextVersion(ctx context.Context, run *publishRun) (string, error) {
	previous := InitialVersion
	if run.context.LatestRelease != nil {
		previous = VersionFromTag(run.context.LatestRelease.Tag)
	}
	next, err := NextVersion(previous, run.releaseType)
	if err != nil {
		return "", err
	}
	run.context.NextRelease = types.NextRelease{Version: next, PublishedAt: c.now()}
	c.logger.InfoContext(ctx, fmt.Sprintf("release type %q: %s -> %s", run.releaseType.String(), previous, next))
	return eventNext, nil
}

func (c *publishComponentImpl) bumpManifest(ctx context.Context, run *publishRun) (string, error) {
	m, err := c.manifest.Read()
	if err != nil {
		return "", err
	}
	run.packageName = m.Name

	version := run.context.NextRelease.Version
	if run.opts.DryRun {
		c.logger.WarnContext(ctx, fmt.Sprintf("skip version bump in package.json in dry-run mode (next: %s)", version))
		return eventNext, nil
	}
	if err := c.manifest.SetVersion(version); err != nil {
		return "", err
	}
	c.logger.InfoContext(ctx, fmt.Sprintf("bumped version in package.json to: %s", version))
	return eventNext, nil
}

func (c *publishComponentImpl) runReleaseScript(ctx context.Context, run *publishRun) (string, error) {
	if run.opts.DryRun {
		c.logger.WarnContext(ctx, "skip executing publishing script in dry-run mode")
		return eventNext, nil
	}

	version := run.context.NextRelease.Version
	c.logger.InfoContext(ctx, fmt.Sprintf("executing publishing script for profile %q: %s", run.profile.Name, run.profile.Use))
	stdout := newLineLogger(ctx, c.logger, "stdout")
	stderr := newLineLogger(ctx, c.logger, "stderr")
	err := c.exec.Stream(ctx, "sh", []string{"-c", run.profile.Use}, stdout, stderr, git.WithEnv("RELEASE_VERSION", version))
	stdout.Flush()
	stderr.Flush()
	if err != nil {
		c.logger.ErrorContext(ctx, scriptSummary("publishing script failed, see the process output below:", stdout, stderr))
		return "", errorx.ReleaseScriptFailed(err, errorx.Ctx().Set("profile", run.profile.Name).Set("version", version))
	}

	c.logger.InfoContext(ctx, scriptSummary("publishing script done, see the process output below:", stdout, stderr))
	return eventNext, nil
}

func scriptSummary(title string, streams ...*lineLogger) string {
	var summary strings.Builder
	summary.WriteString(title + "\n\n")
	for _, out := range streams {
		if out.Len() > 0 {
			fmt.Fprintf(&summary, "--- %s ---\n%s\n", out.stream, out.String())
		}
	}
	return summary.String()
}

func (c *publishComponentImpl) createReleaseCommit(ctx context.Context, run *publishRun) (string, error) {
	message := "chore(release): " + run.context.NextRelease.Tag()
	if run.opts.DryRun {
		c.logger.WarnContext(ctx, fmt.Sprintf("skip creating a release commit in dry-run mode: %q", message))
		return eventNext, nil
	}

	if _, err := c.repo.CreateCommit(ctx, message, c.manifest.Path()); err != nil {
		return "", err
	}
	preHead := run.preHead
	run.reverts.Push("release commit", func(ctx context.Context) error {
		return c.revertCommit(ctx, preHead)
	})
	c.logger.InfoContext(ctx, "created release commit!")
	return eventNext, nil
}

// revertCommit moves the branch back to hash, keeping unrelated local changes.
func (c *publishComponentImpl) revertCommit(ctx context.Context, hash string) error {
	dirty, err := c.repo.HasChanges(ctx)
	if err != nil {
		return err
	}
	if dirty {
		if err := c.repo.Stash(ctx); err != nil {
			return err
		}
	}
	if err := c.repo.ResetHard(ctx, hash); err != nil {
		return err
	}
	if dirty {
		return c.repo.StashPop(ctx)
	}
	return nil
}

func (c *publishComponentImpl) createReleaseTag(ctx context.Context, run *publishRun) (string, error) {
	tag := run.context.NextRelease.Tag()
	if run.opts.DryRun {
		c.logger.WarnContext(ctx, fmt.Sprintf("skip creating a release tag in dry-run mode: %s", tag))
		return eventNext, nil
	}

	if err := c.repo.CreateTag(ctx, tag); err != nil {
		return "", err
	}
	run.reverts.Push("release tag", func(ctx context.Context) error {
		if err := c.repo.DeleteTag(ctx, tag); err != nil {
			return err
		}
		if err := c.repo.DeleteRemoteTag(ctx, tag); err != nil {
			c.logger.WarnContext(ctx, "failed to delete the release tag from remote", slog.String("tag", tag), slog.Any("error", err))
		}
		return nil
	})
	c.logger.InfoContext(ctx, fmt.Sprintf("created release tag %q!", tag))
	return eventNext, nil
}

func (c *publishComponentImpl) pushToRemote(ctx context.Context, run *publishRun) (string, error) {
	tag := run.context.NextRelease.Tag()
	if run.opts.DryRun {
		c.logger.WarnContext(ctx, fmt.Sprintf("skip pushing the release to %q in dry-run mode", run.branch))
		return eventNext, nil
	}

	if err := c.repo.Push(ctx, run.branch, tag); err != nil {
		return "", err
	}
	preHead, branch := run.preHead, run.branch
	run.reverts.Push("push", func(ctx context.Context) error {
		if err := c.repo.ForcePushBranch(ctx, preHead, branch); err != nil {
			c.logger.WarnContext(ctx, "failed to restore the remote branch", slog.String("branch", branch), slog.Any("error", err))
		}
		return nil
	})
	c.logger.InfoContext(ctx, fmt.Sprintf("pushed release to %q!", branch))
	return eventNext, nil
}

func (c *publishComponentImpl) generateReleaseNotes(ctx context.Context, run *publishRun) (string, error) {
	notes, err := c.notes.ReleaseNotes(ctx, run.context.Repo, run.commits)
	if err != nil {
		return "", err
	}
	run.notes = ToMarkdown(run.context, notes)
	c.logger.InfoContext(ctx, "generated release notes:\n\n"+run.notes)
	return eventNext, nil
}

func (c *publishComponentImpl) createRemoteRelease(ctx context.Context, run *publishRun) (string, error) {
	if run.opts.DryRun {
		run.releaseURL = "#"
		c.logger.WarnContext(ctx, "skip creating a GitHub release in dry-run mode")
		return eventNext, nil
	}

	tag := run.context.NextRelease.Tag()
	req := types.CreateGitHubReleaseReq{TagName: tag, Name: tag, Body: run.notes, MakeLatest: "true"}
	if run.profile.Prerelease {
		req.MakeLatest = "false"
	}
	release, err := c.github.CreateRelease(ctx, run.context.Repo, req)
	if err != nil {
		return "", err
	}
	repo, id := run.context.Repo, release.ID
	run.reverts.Push("GitHub release", func(ctx context.Context) error {
		return c.github.DeleteRelease(ctx, repo, id)
	})
	run.releaseURL = release.HTMLURL
	c.logger.InfoContext(ctx, "created release: "+release.HTMLURL)
	return eventNext, nil
}

func (c *publishComponentImpl) commentOnIssues(ctx context.Context, run *publishRun) (string, error) {
	finish := eventFinish
	if run.opts.DryRun {
		finish = eventFinishDryRun
	}

	ids, err := c.refs.ReleaseRefs(ctx, run.context.Repo, run.commits)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		c.logger.ErrorContext(ctx, "failed to collect referenced GitHub issues", slog.Any("error", err))
		return finish, nil
	}
	if len(ids) == 0 {
		c.logger.InfoContext(ctx, "no referenced GitHub issues, nothing to comment!")
		return finish, nil
	}

	c.logger.InfoContext(ctx, fmt.Sprintf("commenting on %d GitHub %s:\n  - %s", len(ids), pluralize("issue", len(ids)), strings.Join(ids, "\n  - ")))
	if run.opts.DryRun {
		c.logger.WarnContext(ctx, "skip commenting on GitHub issues in dry-run mode")
		return finish, nil
	}

	body := ReleaseComment(ReleaseCommentInput{
		Context:     run.context,
		PackageName: run.packageName,
		Profile:     run.profile.Name,
		ReleaseURL:  run.releaseURL,
	})
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for _, id := range ids {
		g.Go(func() error {
			if err := c.github.CreateComment(gctx, run.context.Repo, id, body); err != nil {
				c.logger.ErrorContext(gctx, "failed to comment on GitHub issue", slog.String("id", id), slog.Any("error", err))
			}
			return nil
		})
	}
	_ = g.Wait()
	return finish, nil
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
