// Code generated manually to mirror mockery patterns. DO NOT EDIT.

package manifest

import (
	mock "github.com/stretchr/testify/mock"
	manifest "opencsg.com/csghub-release/builder/manifest"
)

// MockStore is a mock for Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Path() string {
	ret := m.Called()
	return ret.String(0)
}

func (m *MockStore) Read() (*manifest.Manifest, error) {
	ret := m.Called()
	var r0 *manifest.Manifest
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*manifest.Manifest)
	}
	return r0, ret.Error(1)
}

func (m *MockStore) SetVersion(version string) error {
	ret := m.Called(version)
	return ret.Error(0)
}

// NewMockStore creates a new instance of MockStore.
func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStore {
	mockObj := &MockStore{}
	mockObj.Mock.Test(t)

	t.Cleanup(func() { mockObj.AssertExpectations(t) })

	return mockObj
}
