// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package component

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	types "opencsg.com/csghub-release/common/types"
)

// MockContributorComponent is a mock for ContributorComponent.
type MockContributorComponent struct {
	mock.Mock
}

func (m *MockContributorComponent) CommitAuthors(ctx context.Context, repo types.RepoInfo, commit types.ParsedCommit) ([]string, error) {
	ret := m.Called(ctx, repo, commit)
	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0, ret.Error(1)
}

// NewMockContributorComponent creates a new instance of MockContributorComponent.
func NewMockContributorComponent(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockContributorComponent {
	mockObj := &MockContributorComponent{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
