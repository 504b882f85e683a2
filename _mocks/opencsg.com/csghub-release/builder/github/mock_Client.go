// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package github

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	types "opencsg.com/csghub-release/common/types"
)

// MockClient is a mock for Client.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) CreateRelease(ctx context.Context, repo types.RepoInfo, req types.CreateGitHubReleaseReq) (*types.GitHubRelease, error) {
	ret := m.Called(ctx, repo, req)
	var r0 *types.GitHubRelease
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*types.GitHubRelease)
	}
	return r0, ret.Error(1)
}

func (m *MockClient) GetReleaseByTag(ctx context.Context, repo types.RepoInfo, tag string) (*types.GitHubRelease, error) {
	ret := m.Called(ctx, repo, tag)
	var r0 *types.GitHubRelease
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*types.GitHubRelease)
	}
	return r0, ret.Error(1)
}

func (m *MockClient) GetLatestRelease(ctx context.Context, repo types.RepoInfo) (*types.GitHubRelease, error) {
	ret := m.Called(ctx, repo)
	var r0 *types.GitHubRelease
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*types.GitHubRelease)
	}
	return r0, ret.Error(1)
}

func (m *MockClient) DeleteRelease(ctx context.Context, repo types.RepoInfo, id int64) error {
	ret := m.Called(ctx, repo, id)
	return ret.Error(0)
}

func (m *MockClient) GetIssue(ctx context.Context, repo types.RepoInfo, id string) (*types.GitHubIssue, error) {
	ret := m.Called(ctx, repo, id)
	var r0 *types.GitHubIssue
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*types.GitHubIssue)
	}
	return r0, ret.Error(1)
}

func (m *MockClient) CreateComment(ctx context.Context, repo types.RepoInfo, id string, body string) error {
	ret := m.Called(ctx, repo, id, body)
	return ret.Error(0)
}

func (m *MockClient) GetCommitAuthors(ctx context.Context, repo types.RepoInfo, pullRequestID string) (*types.PullRequestAuthors, error) {
	ret := m.Called(ctx, repo, pullRequestID)
	var r0 *types.PullRequestAuthors
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*types.PullRequestAuthors)
	}
	return r0, ret.Error(1)
}

func (m *MockClient) TokenScopes(ctx context.Context) ([]string, error) {
	ret := m.Called(ctx)
	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0, ret.Error(1)
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mockObj := &MockClient{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
