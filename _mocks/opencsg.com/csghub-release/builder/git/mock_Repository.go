// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package git

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	types "opencsg.com/csghub-release/common/types"
)

// MockRepository is a mock for Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Info(ctx context.Context) (types.RepoInfo, error) {
	ret := m.Called(ctx)
	var r0 types.RepoInfo
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(types.RepoInfo)
	}
	return r0, ret.Error(1)
}

func (m *MockRepository) CurrentBranch(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

func (m *MockRepository) Head(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

func (m *MockRepository) Tags(ctx context.Context) ([]string, error) {
	ret := m.Called(ctx)
	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0, ret.Error(1)
}

func (m *MockRepository) TagPointer(ctx context.Context, tag string) (*types.TagPointer, error) {
	ret := m.Called(ctx, tag)
	var r0 *types.TagPointer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*types.TagPointer)
	}
	return r0, ret.Error(1)
}

func (m *MockRepository) Commit(ctx context.Context, hash string) (*types.RawCommit, error) {
	ret := m.Called(ctx, hash)
	var r0 *types.RawCommit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*types.RawCommit)
	}
	return r0, ret.Error(1)
}

func (m *MockRepository) Commits(ctx context.Context, since string, until string) ([]types.RawCommit, error) {
	ret := m.Called(ctx, since, until)
	var r0 []types.RawCommit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]types.RawCommit)
	}
	return r0, ret.Error(1)
}

func (m *MockRepository) Show(ctx context.Context, hash string) (string, error) {
	ret := m.Called(ctx, hash)
	return ret.String(0), ret.Error(1)
}

func (m *MockRepository) CreateCommit(ctx context.Context, message string, files ...string) (string, error) {
	args := []interface{}{ctx, message}
	for _, f := range files {
		args = append(args, f)
	}
	ret := m.Called(args...)
	return ret.String(0), ret.Error(1)
}

func (m *MockRepository) CreateTag(ctx context.Context, tag string) error {
	ret := m.Called(ctx, tag)
	return ret.Error(0)
}

func (m *MockRepository) DeleteTag(ctx context.Context, tag string) error {
	ret := m.Called(ctx, tag)
	return ret.Error(0)
}

func (m *MockRepository) DeleteRemoteTag(ctx context.Context, tag string) error {
	ret := m.Called(ctx, tag)
	return ret.Error(0)
}

func (m *MockRepository) Push(ctx context.Context, branch string, tag string) error {
	ret := m.Called(ctx, branch, tag)
	return ret.Error(0)
}

func (m *MockRepository) ForcePushBranch(ctx context.Context, hash string, branch string) error {
	ret := m.Called(ctx, hash, branch)
	return ret.Error(0)
}

func (m *MockRepository) HasChanges(ctx context.Context) (bool, error) {
	ret := m.Called(ctx)
	return ret.Bool(0), ret.Error(1)
}

func (m *MockRepository) Stash(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

func (m *MockRepository) StashPop(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

func (m *MockRepository) ResetHard(ctx context.Context, hash string) error {
	ret := m.Called(ctx, hash)
	return ret.Error(0)
}

// NewMockRepository creates a new instance of MockRepository.
func NewMockRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRepository {
	mockObj := &MockRepository{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
