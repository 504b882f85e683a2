package component

import (
	"testing"

	"github.com/stretchr/testify/require"
	"opencsg.com/csghub-release/common/types"
	"opencsg.com/csghub-release/component/commitparser"
)

func parseSubjects(messages ...string) []types.ParsedCommit {
	raw := make([]types.RawCommit, 0, len(messages))
	for i, m := range messages {
		subject, body := m, ""
		for j := 0; j < len(m); j++ {
			if m[j] == '\n' {
				subject, body = m[:j], m[j+1:]
				break
			}
		}
		raw = append(raw, types.RawCommit{Hash: string(rune('a'+i)) + "00000", Subject: subject, Body: body})
	}
	return commitparser.Parse(raw)
}

func TestNextReleaseType(t *testing.T) {
	cases := []struct {
		name       string
		commits    []string
		prerelease bool
		want       types.ReleaseType
	}{
		{name: "feat dominates fix", commits: []string{"fix: bug", "feat: feature"}, want: types.ReleaseTypeMinor},
		{name: "fix after feat keeps minor", commits: []string{"feat: feature", "fix: bug"}, want: types.ReleaseTypeMinor},
		{name: "fix only", commits: []string{"fix: bug", "docs: readme"}, want: types.ReleaseTypePatch},
		{name: "appendix is breaking", commits: []string{"fix: bug", "feat!: remove api"}, want: types.ReleaseTypeMajor},
		{name: "scoped appendix is breaking", commits: []string{"refactor(core)!: rename"}, want: types.ReleaseTypeMajor},
		{name: "footer note is breaking", commits: []string{"fix: bug\n\nBREAKING CHANGE: gone"}, want: types.ReleaseTypeMajor},
		{name: "prerelease caps at minor", commits: []string{"feat!: remove api"}, prerelease: true, want: types.ReleaseTypeMinor},
		{name: "prerelease footer caps at minor", commits: []string{"docs: x\n\nBREAKING CHANGE: y"}, prerelease: true, want: types.ReleaseTypeMinor},
		{name: "chore and docs", commits: []string{"chore: deps", "docs: readme"}, want: types.ReleaseTypeNone},
		{name: "prose mentioning breaking change", commits: []string{"docs: abc\n\nshould this be a BREAKING CHANGE?"}, want: types.ReleaseTypeNone},
		{name: "untyped", commits: []string{"Make features better (#15)"}, want: types.ReleaseTypeNone},
		{name: "empty", commits: nil, want: types.ReleaseTypeNone},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NextReleaseType(parseSubjects(c.commits...), ReleaseTypeOptions{Prerelease: c.prerelease})
			require.Equal(t, c.want, got)
		})
	}
}

func TestIsBreakingChange(t *testing.T) {
	require.True(t, IsBreakingChange(types.ParsedCommit{Type: "feat", TypeAppendix: "!"}))
	require.True(t, IsBreakingChange(types.ParsedCommit{
		Type:  "chore",
		Notes: []types.CommitNote{{Title: types.BreakingChangeNoteTitle, Text: "x"}},
	}))
	require.False(t, IsBreakingChange(types.ParsedCommit{Type: "feat", Body: "BREAKING CHANGE: in body"}))
}
