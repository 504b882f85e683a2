package types

import (
	"strings"
	"time"
)

type ReleaseType string

const (
	ReleaseTypeNone  ReleaseType = ""
	ReleaseTypePatch ReleaseType = "patch"
	ReleaseTypeMinor ReleaseType = "minor"
	ReleaseTypeMajor ReleaseType = "major"
)

func (t ReleaseType) String() string {
	if t == ReleaseTypeNone {
		return "none"
	}
	return string(t)
}

type RepoInfo struct {
	Owner  string `json:"owner"`
	Name   string `json:"name"`
	Remote string `json:"remote"`
	// URL is the canonical https://github.com/{owner}/{name}/ address.
	URL string `json:"url"`
}

func (r RepoInfo) Slug() string {
	return r.Owner + "/" + r.Name
}

// TagPointer is a tag resolved against the local repository.
type TagPointer struct {
	Tag  string `json:"tag"`
	Hash string `json:"hash"`
}

type NextRelease struct {
	Version     string    `json:"version"`
	PublishedAt time.Time `json:"published_at"`
}

// Tag is always derived from Version and never stored.
func (r NextRelease) Tag() string {
	return ReleaseTag(r.Version)
}

type ReleaseContext struct {
	Repo          RepoInfo    `json:"repo"`
	LatestRelease *TagPointer `json:"latest_release,omitempty"`
	NextRelease   NextRelease `json:"next_release"`
}

// ReleaseTag returns the "v"-prefixed tag of a version.
func ReleaseTag(version string) string {
	return "v" + strings.TrimPrefix(version, "v")
}

type ReleaseNoteType string

const (
	ReleaseNoteBreaking ReleaseNoteType = "breaking"
	ReleaseNoteFeat     ReleaseNoteType = "feat"
	ReleaseNoteFix      ReleaseNoteType = "fix"
)

// ReleaseNoteTypes lists note categories in rendering order.
var ReleaseNoteTypes = []ReleaseNoteType{
	ReleaseNoteBreaking,
	ReleaseNoteFeat,
	ReleaseNoteFix,
}

// PublishOutcome is the terminal state of a publish run.
type PublishOutcome string

const (
	PublishCompleted            PublishOutcome = "completed"
	PublishCompletedDryRun      PublishOutcome = "completed_dry_run"
	PublishAbortedNoCommits     PublishOutcome = "aborted_no_commits"
	PublishAbortedNoVersionBump PublishOutcome = "aborted_no_version_bump"
	PublishFailed               PublishOutcome = "failed"
)

// Failed reports whether the outcome should end the process with a non-zero exit code.
func (o PublishOutcome) Failed() bool {
	return o == PublishFailed
}

type ReleaseStatus string

const (
	// ReleaseStatusPublic is visible on the GitHub releases page.
	ReleaseStatusPublic ReleaseStatus = "public"
	// ReleaseStatusDraft is pushed to GitHub but marked as draft.
	ReleaseStatusDraft ReleaseStatus = "draft"
	// ReleaseStatusUnpublished exists only as a local tag.
	ReleaseStatusUnpublished ReleaseStatus = "unpublished"
)

type ReleaseInfo struct {
	Pointer    TagPointer    `json:"pointer"`
	CommitLog  string        `json:"commit_log"`
	Status     ReleaseStatus `json:"status"`
	URL        string        `json:"url,omitempty"`
	CreatedAt  *time.Time    `json:"created_at,omitempty"`
	Prerelease bool          `json:"prerelease"`
}

// GroupedCommits holds commits per note category. Iterate it in
// ReleaseNoteTypes order.
type GroupedCommits map[ReleaseNoteType][]ParsedCommit

// ReleaseNotes holds commits enriched with their authors per note category.
type ReleaseNotes map[ReleaseNoteType][]ReleaseNoteCommit
