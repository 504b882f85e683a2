package component

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mockgithub "opencsg.com/csghub-release/_mocks/opencsg.com/csghub-release/builder/github"
	"opencsg.com/csghub-release/common/types"
)

var testRepo = types.RepoInfo{Owner: "octocat", Name: "hello-world", Remote: "origin", URL: "https://github.com/octocat/hello-world/"}

func strPtr(s string) *string {
	return &s
}

func TestReleaseRefsComponent_PullRequestClosesIssues(t *testing.T) {
	gh := mockgithub.NewMockClient(t)
	rc := NewReleaseRefsComponent(gh, nil)

	gh.On("GetIssue", mock.Anything, testRepo, "10").Return(&types.GitHubIssue{
		Number:      10,
		Body:        strPtr("This pull request does things.\n\nCloses #1\nFixes #5"),
		PullRequest: &types.GitHubPullRequest{URL: "https://api.github.com/repos/octocat/hello-world/pulls/10"},
	}, nil).Once()

	ids, err := rc.ReleaseRefs(context.Background(), testRepo, parseSubjects("fix(ui): some stuff (#10)"))
	require.NoError(t, err)
	require.Equal(t, []string{"10", "1", "5"}, ids)
}

func TestReleaseRefsComponent_NullBody(t *testing.T) {
	gh := mockgithub.NewMockClient(t)
	rc := NewReleaseRefsComponent(gh, nil)

	gh.On("GetIssue", mock.Anything, testRepo, "15").Return(&types.GitHubIssue{
		Number:      15,
		PullRequest: &types.GitHubPullRequest{},
	}, nil).Once()

	ids, err := rc.ReleaseRefs(context.Background(), testRepo, parseSubjects("fix: add license", "Make features better (#15)"))
	require.NoError(t, err)
	require.Equal(t, []string{"15"}, ids)
}

func TestReleaseRefsComponent_IssuesAreNotScanned(t *testing.T) {
	gh := mockgithub.NewMockClient(t)
	rc := NewReleaseRefsComponent(gh, nil)

	gh.On("GetIssue", mock.Anything, testRepo, "3").Return(&types.GitHubIssue{
		Number: 3,
		Body:   strPtr("Closes #4"),
	}, nil).Once()

	ids, err := rc.ReleaseRefs(context.Background(), testRepo, parseSubjects("fix: crash\n\nResolves #3"))
	require.NoError(t, err)
	require.Equal(t, []string{"3"}, ids)
}

func TestReleaseRefsComponent_FailedFetchKeepsID(t *testing.T) {
	gh := mockgithub.NewMockClient(t)
	rc := NewReleaseRefsComponent(gh, nil)

	gh.On("GetIssue", mock.Anything, testRepo, "7").Return(nil, errors.New("boom")).Once()
	gh.On("GetIssue", mock.Anything, testRepo, "8").Return(&types.GitHubIssue{
		Number:      8,
		Body:        strPtr("fixes octocat/hello-world#9 and fixes someone/else#11"),
		PullRequest: &types.GitHubPullRequest{},
	}, nil).Once()

	ids, err := rc.ReleaseRefs(context.Background(), testRepo, parseSubjects("feat: one (#7)", "fix: two (#8)", "fix: three (#7)", "fix: other repo someone/else#2"))
	require.NoError(t, err)
	require.Equal(t, []string{"7", "8", "9"}, ids)
}

func TestReleaseRefsComponent_NoReferences(t *testing.T) {
	gh := mockgithub.NewMockClient(t)
	rc := NewReleaseRefsComponent(gh, nil)

	ids, err := rc.ReleaseRefs(context.Background(), testRepo, parseSubjects("chore: nothing"))
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestReleaseRefsComponent_Cancelled(t *testing.T) {
	gh := mockgithub.NewMockClient(t)
	rc := NewReleaseRefsComponent(gh, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gh.On("GetIssue", mock.Anything, testRepo, "1").Return(nil, context.Canceled).Maybe()

	_, err := rc.ReleaseRefs(ctx, testRepo, parseSubjects("fix: a (#1)"))
	require.ErrorIs(t, err, context.Canceled)
}
