// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package git

import (
	context "context"
	io "io"

	mock "github.com/stretchr/testify/mock"
	git "opencsg.com/csghub-release/builder/git"
)

// MockExecutor is a mock for Executor.
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Exec(ctx context.Context, name string, args []string, opts ...git.ExecOption) (git.ExecResult, error) {
	ret := m.Called(ctx, name, args, opts)
	var r0 git.ExecResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(git.ExecResult)
	}
	return r0, ret.Error(1)
}

// Stream writes the stdout and stderr values of the expectation, when they
// are strings, before returning its error.
func (m *MockExecutor) Stream(ctx context.Context, name string, args []string, stdout io.Writer, stderr io.Writer, opts ...git.ExecOption) error {
	ret := m.Called(ctx, name, args, opts)
	if len(ret) > 1 {
		if s, ok := ret.Get(1).(string); ok && stdout != nil {
			_, _ = io.WriteString(stdout, s)
		}
	}
	if len(ret) > 2 {
		if s, ok := ret.Get(2).(string); ok && stderr != nil {
			_, _ = io.WriteString(stderr, s)
		}
	}
	return ret.Error(0)
}

func (m *MockExecutor) Dir() string {
	ret := m.Called()
	return ret.String(0)
}

// NewMockExecutor creates a new instance of MockExecutor.
func NewMockExecutor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockExecutor {
	mockObj := &MockExecutor{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
