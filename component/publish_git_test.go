package component

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mockgithub "opencsg.com/csghub-release/_mocks/opencsg.com/csghub-release/builder/github"
	mockcomponent "opencsg.com/csghub-release/_mocks/opencsg.com/csghub-release/component"
	"opencsg.com/csghub-release/builder/git"
	"opencsg.com/csghub-release/builder/manifest"
	"opencsg.com/csghub-release/common/config"
	"opencsg.com/csghub-release/common/errorx"
	"opencsg.com/csghub-release/common/types"
)

const testOriginURL = "git@github.com:octocat/hello-world.git"

type testGitRepo struct {
	dir    string
	remote string
	exec   git.Executor
}

// newTestGitRepo creates a repository with two pushed commits whose origin
// points at a local bare repository.
func newTestGitRepo(t *testing.T) *testGitRepo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
	home := t.TempDir()
	t.Setenv("GIT_AUTHOR_NAME", "octocat")
	t.Setenv("GIT_AUTHOR_EMAIL", "octocat@github.com")
	t.Setenv("GIT_COMMITTER_NAME", "octocat")
	t.Setenv("GIT_COMMITTER_EMAIL", "octocat@github.com")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("HOME", home)

	r := &testGitRepo{dir: t.TempDir(), remote: filepath.Join(home, "hello-world.git")}
	r.exec = git.NewExecutor(r.dir, nil)

	r.git(t, "init", "-q", "--bare", r.remote)
	r.git(t, "init", "-q", "-b", "main")
	r.git(t, "config", "commit.gpgsign", "false")
	r.git(t, "config", "tag.gpgsign", "false")
	r.git(t, "remote", "add", "origin", testOriginURL)
	r.git(t, "config", "url."+r.remote+".insteadOf", testOriginURL)

	r.write(t, "package.json", `{"name": "hello-world", "version": "0.0.0"}`)
	r.git(t, "add", "package.json")
	r.git(t, "commit", "-q", "-m", "chore: init")
	r.write(t, "feature.txt", "feature")
	r.git(t, "add", "feature.txt")
	r.git(t, "commit", "-q", "-m", "feat: add feature")
	r.git(t, "push", "-q", "origin", "main")
	return r
}

func (r *testGitRepo) git(t *testing.T, args ...string) string {
	t.Helper()
	res, err := r.exec.Exec(context.Background(), "git", args)
	require.NoError(t, err)
	return strings.TrimSpace(res.Stdout)
}

func (r *testGitRepo) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(r.dir, name), []byte(content), 0o644))
}

func TestPublishComponent_CancelledRunRollsBackRepository(t *testing.T) {
	r := newTestGitRepo(t)
	preHead := r.git(t, "rev-parse", "HEAD")

	logger, logs := newRecordingLogger()
	gh := mockgithub.NewMockClient(t)
	notes := mockcomponent.NewMockReleaseNotesComponent(t)
	pc := &publishComponentImpl{
		repo:     git.NewRepository(r.exec, "origin", logger),
		exec:     r.exec,
		manifest: manifest.NewStore(filepath.Join(r.dir, "package.json")),
		github:   gh,
		refs:     mockcomponent.NewMockReleaseRefsComponent(t),
		notes:    notes,
		releaseConfig: &config.ReleaseConfig{Profiles: []config.Profile{
			{Name: "latest", Use: "echo release"},
		}},
		logger: logger,
		now:    time.Now,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gh.On("TokenScopes", mock.Anything).Return([]string{"repo", "admin:repo_hook", "admin:org_hook"}, nil).Once()
	notes.On("ReleaseNotes", mock.Anything, mock.Anything, mock.Anything).Return(types.ReleaseNotes{}, nil).Once()
	gh.On("CreateRelease", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled).Once()

	result, err := pc.Publish(ctx, PublishOptions{})
	require.Error(t, err)
	require.Equal(t, types.PublishFailed, result.Outcome)
	require.Equal(t, "0.1.0", result.Context.NextRelease.Version)
	require.True(t, errors.Is(err, errorx.ErrRollback))
	require.True(t, logs.has(slog.LevelInfo, "rolled back release changes"))

	require.Equal(t, preHead, r.git(t, "rev-parse", "HEAD"))
	require.Empty(t, r.git(t, "tag", "--list"))
	require.Empty(t, r.git(t, "status", "--porcelain"))
	require.Equal(t, preHead, r.git(t, "--git-dir", r.remote, "rev-parse", "main"))
	require.Empty(t, r.git(t, "--git-dir", r.remote, "tag", "--list"))

	m, err := manifest.NewStore(filepath.Join(r.dir, "package.json")).Read()
	require.NoError(t, err)
	require.Equal(t, "0.0.0", m.Version)
}

func TestPublishComponent_CancelledBeforeMutationStops(t *testing.T) {
	pc, m := initializeTestPublishComponent(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.expectValidToken()
	m.repo.On("Info", mock.Anything).Return(testRepo, nil).Once()
	m.repo.On("CurrentBranch", mock.Anything).Return("main", nil).Once()
	m.repo.On("Head", mock.Anything).Return("head000", nil).Run(func(mock.Arguments) { cancel() }).Once()

	result, err := pc.Publish(ctx, PublishOptions{})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, types.PublishFailed, result.Outcome)
	require.True(t, m.logs.has(slog.LevelError, "release failed"))
	require.False(t, m.logs.has(slog.LevelInfo, "reverting release changes..."))
}
