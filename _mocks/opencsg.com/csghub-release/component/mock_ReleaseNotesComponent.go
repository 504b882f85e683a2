// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package component

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	types "opencsg.com/csghub-release/common/types"
)

// MockReleaseNotesComponent is a mock for ReleaseNotesComponent.
type MockReleaseNotesComponent struct {
	mock.Mock
}

func (m *MockReleaseNotesComponent) ReleaseNotes(ctx context.Context, repo types.RepoInfo, commits []types.ParsedCommit) (types.ReleaseNotes, error) {
	ret := m.Called(ctx, repo, commits)
	var r0 types.ReleaseNotes
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(types.ReleaseNotes)
	}
	return r0, ret.Error(1)
}

func (m *MockReleaseNotesComponent) InjectContributors(ctx context.Context, repo types.RepoInfo, groups types.GroupedCommits) (types.ReleaseNotes, error) {
	ret := m.Called(ctx, repo, groups)
	var r0 types.ReleaseNotes
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(types.ReleaseNotes)
	}
	return r0, ret.Error(1)
}

// NewMockReleaseNotesComponent creates a new instance of MockReleaseNotesComponent.
func NewMockReleaseNotesComponent(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReleaseNotesComponent {
	mockObj := &MockReleaseNotesComponent{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
