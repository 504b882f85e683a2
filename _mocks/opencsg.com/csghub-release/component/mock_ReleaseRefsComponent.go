// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package component

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	types "opencsg.com/csghub-release/common/types"
)

// MockReleaseRefsComponent is a mock for ReleaseRefsComponent.
type MockReleaseRefsComponent struct {
	mock.Mock
}

func (m *MockReleaseRefsComponent) ReleaseRefs(ctx context.Context, repo types.RepoInfo, commits []types.ParsedCommit) ([]string, error) {
	ret := m.Called(ctx, repo, commits)
	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0, ret.Error(1)
}

// NewMockReleaseRefsComponent creates a new instance of MockReleaseRefsComponent.
func NewMockReleaseRefsComponent(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReleaseRefsComponent {
	mockObj := &MockReleaseRefsComponent{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
