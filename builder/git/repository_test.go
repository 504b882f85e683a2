package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"opencsg.com/csghub-release/common/errorx"
)

func newTestRepo(t *testing.T) (Repository, Executor, string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed")
	}
	dir := t.TempDir()
	t.Setenv("GIT_AUTHOR_NAME", "octocat")
	t.Setenv("GIT_AUTHOR_EMAIL", "octocat@github.com")
	t.Setenv("GIT_COMMITTER_NAME", "octocat")
	t.Setenv("GIT_COMMITTER_EMAIL", "octocat@github.com")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("HOME", dir)

	e := NewExecutor(dir, nil)
	run := func(args ...string) {
		_, err := e.Exec(context.Background(), "git", args)
		require.NoError(t, err)
	}
	run("init", "-q", "-b", "main")
	run("config", "commit.gpgsign", "false")
	run("config", "tag.gpgsign", "false")
	run("remote", "add", "origin", "git@github.com:octocat/release-me.git")
	return NewRepository(e, "origin", nil), e, dir
}

func commitFile(t *testing.T, repo Repository, dir, name, message string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(message), 0o644))
	hash, err := repo.CreateCommit(context.Background(), message, name)
	require.NoError(t, err)
	return hash
}

func TestRepository_Info(t *testing.T) {
	repo, _, _ := newTestRepo(t)
	info, err := repo.Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, "octocat", info.Owner)
	require.Equal(t, "release-me", info.Name)
	require.Equal(t, "git@github.com:octocat/release-me.git", info.Remote)
	require.Equal(t, "https://github.com/octocat/release-me/", info.URL)
}

func TestRepository_CommitsAndTags(t *testing.T) {
	ctx := context.Background()
	repo, _, dir := newTestRepo(t)

	first := commitFile(t, repo, dir, "a.txt", "feat: first feature")
	require.NoError(t, repo.CreateTag(ctx, "v1.0.0"))
	commitFile(t, repo, dir, "b.txt", "fix(ui): second\n\nCloses #4")
	third := commitFile(t, repo, dir, "c.txt", "feat!: third")

	branch, err := repo.CurrentBranch(ctx)
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	head, err := repo.Head(ctx)
	require.NoError(t, err)
	require.Equal(t, third, head)

	tags, err := repo.Tags(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"v1.0.0"}, tags)

	pointer, err := repo.TagPointer(ctx, "v1.0.0")
	require.NoError(t, err)
	require.Equal(t, first, pointer.Hash)

	missing, err := repo.TagPointer(ctx, "v9.9.9")
	require.NoError(t, err)
	require.Nil(t, missing)

	commits, err := repo.Commits(ctx, pointer.Hash, HEAD)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	require.Equal(t, "feat!: third", commits[0].Subject)
	require.Equal(t, "fix(ui): second", commits[1].Subject)
	require.Equal(t, "Closes #4", commits[1].Body)
	require.Equal(t, "octocat", commits[1].Author.Name)
	require.False(t, commits[1].Author.Date.IsZero())

	all, err := repo.Commits(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	beforeThird, err := repo.Commits(ctx, "", third)
	require.NoError(t, err)
	require.Len(t, beforeThird, 2)

	c, err := repo.Commit(ctx, first)
	require.NoError(t, err)
	require.Equal(t, "feat: first feature", c.Subject)

	out, err := repo.Show(ctx, first)
	require.NoError(t, err)
	require.Contains(t, out, "feat: first feature")
}

func TestRepository_ResetWithStash(t *testing.T) {
	ctx := context.Background()
	repo, _, dir := newTestRepo(t)

	base := commitFile(t, repo, dir, "a.txt", "feat: base")
	commitFile(t, repo, dir, "b.txt", "chore(release): v1.0.0")
	require.NoError(t, repo.CreateTag(ctx, "v1.0.0"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "wip.txt"), []byte("wip"), 0o644))
	dirty, err := repo.HasChanges(ctx)
	require.NoError(t, err)
	require.True(t, dirty)

	require.NoError(t, repo.Stash(ctx))
	require.NoError(t, repo.ResetHard(ctx, base))
	require.NoError(t, repo.StashPop(ctx))
	require.NoError(t, repo.DeleteTag(ctx, "v1.0.0"))

	head, err := repo.Head(ctx)
	require.NoError(t, err)
	require.Equal(t, base, head)

	tags, err := repo.Tags(ctx)
	require.NoError(t, err)
	require.Empty(t, tags)

	data, err := os.ReadFile(filepath.Join(dir, "wip.txt"))
	require.NoError(t, err)
	require.Equal(t, "wip", string(data))
}

func TestRepository_PushFailure(t *testing.T) {
	repo, e, dir := newTestRepo(t)
	commitFile(t, repo, dir, "a.txt", "feat: base")
	_, err := e.Exec(context.Background(), "git", []string{"remote", "set-url", "origin", filepath.Join(dir, "missing.git")})
	require.NoError(t, err)

	err = repo.Push(context.Background(), "main", "")
	require.Error(t, err)
	require.True(t, errors.Is(err, errorx.ErrGitPushFailed))
}

func TestExecutor_EnvAndStream(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not installed")
	}
	e := NewExecutor(t.TempDir(), nil)
	res, err := e.Exec(context.Background(), "sh", []string{"-c", "echo $RELEASE_VERSION"}, WithEnv("RELEASE_VERSION", "1.3.0"))
	require.NoError(t, err)
	require.Equal(t, "1.3.0", strings.TrimSpace(res.Stdout))

	var stdout, stderr bytes.Buffer
	err = e.Stream(context.Background(), "sh", []string{"-c", "echo out; echo err >&2; exit 3"}, &stdout, &stderr)
	require.Error(t, err)
	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	require.Equal(t, 3, execErr.ExitCode)
	require.Equal(t, "out\n", stdout.String())
	require.Equal(t, "err\n", stderr.String())
	require.Contains(t, execErr.Error(), "err")
}

func TestParseOriginURL(t *testing.T) {
	cases := []struct {
		origin  string
		owner   string
		name    string
		wantErr bool
	}{
		{origin: "git@github.com:octocat/release-me.git", owner: "octocat", name: "release-me"},
		{origin: "https://github.com/octocat/release-me.git", owner: "octocat", name: "release-me"},
		{origin: "https://github.com/octocat/release-me", owner: "octocat", name: "release-me"},
		{origin: "http://github.com/octocat/release-me.git", owner: "octocat", name: "release-me"},
		{origin: "git@github.com:octocat", wantErr: true},
		{origin: "ftp://github.com/octocat/release-me", wantErr: true},
		{origin: "", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.origin, func(t *testing.T) {
			owner, name, err := ParseOriginURL(c.origin)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.owner, owner)
			require.Equal(t, c.name, name)
		})
	}
}
