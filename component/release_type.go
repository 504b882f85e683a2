package component

import (
	"opencsg.com/csghub-release/common/types"
)

type ReleaseTypeOptions struct {
	// Prerelease caps breaking changes at a minor bump.
	Prerelease bool
}

// IsBreakingChange reports whether the commit is marked breaking either by
// a "!" after its type/scope or by a BREAKING CHANGE footer note. Prose in
// the body that merely mentions the phrase does not count.
func IsBreakingChange(commit types.ParsedCommit) bool {
	if commit.TypeAppendix == "!" {
		return true
	}
	for _, note := range commit.Notes {
		if note.Title == types.BreakingChangeNoteTitle {
			return true
		}
	}
	return false
}

// NextReleaseType returns the strongest bump required by commits, or
// ReleaseTypeNone when no commit qualifies.
func NextReleaseType(commits []types.ParsedCommit, opts ReleaseTypeOptions) types.ReleaseType {
	var minor, patch bool
	for _, commit := range commits {
		if IsBreakingChange(commit) {
			if opts.Prerelease {
				return types.ReleaseTypeMinor
			}
			return types.ReleaseTypeMajor
		}
		switch commit.Type {
		case "feat":
			minor = true
		case "fix":
			patch = true
		}
	}

	switch {
	case minor:
		return types.ReleaseTypeMinor
	case patch:
		return types.ReleaseTypePatch
	default:
		return types.ReleaseTypeNone
	}
}
