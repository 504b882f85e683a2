package git

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"opencsg.com/csghub-release/common/errorx"
	"opencsg.com/csghub-release/common/types"
)

const HEAD = "HEAD"

// fields of one commit record, separated by \x1f; records end with \x1e
const logFormat = "%H%x1f%an%x1f%ae%x1f%aI%x1f%cn%x1f%ce%x1f%cI%x1f%s%x1f%b%x1e"

// Repository is the local repository being released.
type Repository interface {
	Info(ctx context.Context) (types.RepoInfo, error)
	CurrentBranch(ctx context.Context) (string, error)
	Head(ctx context.Context) (string, error)
	// Tags returns tags merged into the current branch.
	Tags(ctx context.Context) ([]string, error)
	// TagPointer returns nil when the tag does not exist.
	TagPointer(ctx context.Context, tag string) (*types.TagPointer, error)
	Commit(ctx context.Context, hash string) (*types.RawCommit, error)
	// Commits lists commits in since..until, newest first. An empty since
	// lists the whole history of until.
	Commits(ctx context.Context, since, until string) ([]types.RawCommit, error)
	Show(ctx context.Context, hash string) (string, error)

	CreateCommit(ctx context.Context, message string, files ...string) (string, error)
	CreateTag(ctx context.Context, tag string) error
	DeleteTag(ctx context.Context, tag string) error
	DeleteRemoteTag(ctx context.Context, tag string) error
	Push(ctx context.Context, branch, tag string) error
	ForcePushBranch(ctx context.Context, hash, branch string) error
	HasChanges(ctx context.Context) (bool, error)
	Stash(ctx context.Context) error
	StashPop(ctx context.Context) error
	ResetHard(ctx context.Context, hash string) error
}

type repository struct {
	exec   Executor
	remote string
	logger *slog.Logger
}

func NewRepository(exec Executor, remote string, logger *slog.Logger) Repository {
	if remote == "" {
		remote = "origin"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &repository{exec: exec, remote: remote, logger: logger}
}

func (r *repository) git(ctx context.Context, args ...string) (string, error) {
	res, err := r.exec.Exec(ctx, "git", args)
	if err != nil {
		return "", errorx.GitCommandFailed(err, errorx.Ctx().Set("args", strings.Join(args, " ")))
	}
	return strings.TrimSpace(res.Stdout), nil
}

func (r *repository) Info(ctx context.Context) (types.RepoInfo, error) {
	remoteURL, err := r.git(ctx, "config", "--get", "remote."+r.remote+".url")
	if err != nil {
		return types.RepoInfo{}, errorx.InvalidRepoInfo(err, errorx.Ctx().Set("remote", r.remote))
	}
	owner, name, err := ParseOriginURL(remoteURL)
	if err != nil {
		return types.RepoInfo{}, errorx.InvalidRepoInfo(err, errorx.Ctx().Set("remote", r.remote))
	}
	return types.RepoInfo{
		Owner:  owner,
		Name:   name,
		Remote: remoteURL,
		URL:    fmt.Sprintf("https://github.com/%s/%s/", owner, name),
	}, nil
}

var (
	sshOriginRegex  = regexp.MustCompile(`:(.+?)/(.+)\.git$`)
	httpOriginRegex = regexp.MustCompile(`^/(.+?)/(.+?)(\.git)?$`)
	httpSchemeRegex = regexp.MustCompile(`^https?://`)
)

// ParseOriginURL extracts owner and name from a git@ or http(s) remote URL.
func ParseOriginURL(origin string) (owner string, name string, err error) {
	if origin == "" {
		return "", "", fmt.Errorf("expected an origin URL but got an empty string")
	}
	if strings.HasPrefix(origin, "git@") {
		match := sshOriginRegex.FindStringSubmatch(origin)
		if match == nil {
			return "", "", fmt.Errorf("failed to parse origin URL %q: invalid URL structure", origin)
		}
		return match[1], match[2], nil
	}
	if httpSchemeRegex.MatchString(origin) {
		u, err := url.Parse(origin)
		if err != nil {
			return "", "", fmt.Errorf("failed to parse origin URL %q: %w", origin, err)
		}
		match := httpOriginRegex.FindStringSubmatch(u.Path)
		if match == nil {
			return "", "", fmt.Errorf("failed to parse origin URL %q: invalid URL structure", origin)
		}
		return match[1], match[2], nil
	}
	return "", "", fmt.Errorf("origin URL %q is of unknown scheme (git/http/https)", origin)
}

func (r *repository) CurrentBranch(ctx context.Context) (string, error) {
	return r.git(ctx, "rev-parse", "--abbrev-ref", HEAD)
}

func (r *repository) Head(ctx context.Context) (string, error) {
	return r.git(ctx, "rev-parse", HEAD)
}

func (r *repository) Tags(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "tag", "--merged")
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (r *repository) TagPointer(ctx context.Context, tag string) (*types.TagPointer, error) {
	hash, err := r.git(ctx, "rev-list", "-n", "1", tag)
	if err != nil {
		// an unknown tag is not an error
		r.logger.DebugContext(ctx, "tag not found", slog.String("tag", tag), slog.Any("error", err))
		return nil, nil
	}
	return &types.TagPointer{Tag: tag, Hash: hash}, nil
}

func (r *repository) Commit(ctx context.Context, hash string) (*types.RawCommit, error) {
	out, err := r.log(ctx, "-n", "1", hash)
	if err != nil {
		return nil, err
	}
	commits := parseLog(out)
	if len(commits) == 0 {
		return nil, nil
	}
	return &commits[0], nil
}

func (r *repository) Commits(ctx context.Context, since, until string) ([]types.RawCommit, error) {
	if until == "" {
		until = HEAD
	}
	args := []string{}
	if since != "" {
		args = append(args, since+".."+until)
	} else {
		args = append(args, until)
		// only "until" given: it is the previous release commit itself
		if until != HEAD {
			args = append(args, "--skip=1")
		}
	}
	out, err := r.log(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

func (r *repository) log(ctx context.Context, args ...string) (string, error) {
	res, err := r.exec.Exec(ctx, "git", append([]string{"log", "--format=" + logFormat}, args...))
	if err != nil {
		return "", errorx.LogFailed(err, errorx.Ctx().Set("args", strings.Join(args, " ")))
	}
	return res.Stdout, nil
}

func parseLog(out string) []types.RawCommit {
	var commits []types.RawCommit
	for _, record := range strings.Split(out, "\x1e") {
		record = strings.TrimLeft(record, "\r\n")
		if strings.TrimSpace(record) == "" {
			continue
		}
		parts := strings.SplitN(record, "\x1f", 9)
		if len(parts) < 8 {
			continue
		}
		commit := types.RawCommit{
			Hash:      strings.TrimSpace(parts[0]),
			Author:    types.Signature{Name: parts[1], Email: parts[2], Date: parseGitDate(parts[3])},
			Committer: types.Signature{Name: parts[4], Email: parts[5], Date: parseGitDate(parts[6])},
			Subject:   parts[7],
		}
		if len(parts) > 8 {
			commit.Body = strings.TrimRight(parts[8], "\r\n")
		}
		commits = append(commits, commit)
	}
	return commits
}

func parseGitDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (r *repository) Show(ctx context.Context, hash string) (string, error) {
	return r.git(ctx, "log", "-1", hash)
}

func (r *repository) CreateCommit(ctx context.Context, message string, files ...string) (string, error) {
	if len(files) > 0 {
		if _, err := r.git(ctx, append([]string{"add"}, files...)...); err != nil {
			return "", errorx.CommitFailed(err, errorx.Ctx().Set("files", files))
		}
	}
	if _, err := r.git(ctx, "commit", "-m", message); err != nil {
		return "", errorx.CommitFailed(err, errorx.Ctx().Set("message", message))
	}
	return r.Head(ctx)
}

func (r *repository) CreateTag(ctx context.Context, tag string) error {
	if _, err := r.git(ctx, "tag", tag); err != nil {
		return errorx.TagFailed(err, errorx.Ctx().Set("tag", tag))
	}
	return nil
}

func (r *repository) DeleteTag(ctx context.Context, tag string) error {
	if _, err := r.git(ctx, "tag", "-d", tag); err != nil {
		return errorx.TagFailed(err, errorx.Ctx().Set("tag", tag))
	}
	return nil
}

func (r *repository) DeleteRemoteTag(ctx context.Context, tag string) error {
	if _, err := r.git(ctx, "push", "--delete", r.remote, tag); err != nil {
		return errorx.PushFailed(err, errorx.Ctx().Set("remote", r.remote).Set("tag", tag))
	}
	return nil
}

func (r *repository) Push(ctx context.Context, branch, tag string) error {
	args := []string{"push", r.remote, branch}
	if tag != "" {
		args = append(args, tag)
	}
	if _, err := r.git(ctx, args...); err != nil {
		return errorx.PushFailed(err, errorx.Ctx().Set("remote", r.remote).Set("branch", branch))
	}
	return nil
}

func (r *repository) ForcePushBranch(ctx context.Context, hash, branch string) error {
	if _, err := r.git(ctx, "push", "--force-with-lease", r.remote, hash+":refs/heads/"+branch); err != nil {
		return errorx.PushFailed(err, errorx.Ctx().Set("remote", r.remote).Set("branch", branch))
	}
	return nil
}

func (r *repository) HasChanges(ctx context.Context) (bool, error) {
	out, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

func (r *repository) Stash(ctx context.Context) error {
	_, err := r.git(ctx, "stash", "push", "--include-untracked")
	return err
}

func (r *repository) StashPop(ctx context.Context) error {
	_, err := r.git(ctx, "stash", "pop")
	return err
}

func (r *repository) ResetHard(ctx context.Context, hash string) error {
	if _, err := r.git(ctx, "reset", "--hard", hash); err != nil {
		return errorx.ResetFailed(err, errorx.Ctx().Set("hash", hash))
	}
	return nil
}
