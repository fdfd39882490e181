// Package mocks provides test doubles for the gdocs client.
package mocks

import (
	"context"

	gdocs "github.com/nest-agency/pitch-cli/pkg/gdocs"
	mock "github.com/stretchr/testify/mock"
)

// MockClient is a mock type for the Client interface.
type MockClient struct {
	mock.Mock
}

// CreateDocument provides a mock function with given fields: ctx, title
func (_m *MockClient) CreateDocument(ctx context.Context, title string) (*gdocs.Document, error) {
	ret := _m.Called(ctx, title)

	if len(ret) == 0 {
		panic("no return value specified for CreateDocument")
	}

	var r0 *gdocs.Document
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*gdocs.Document, error)); ok {
		return rf(ctx, title)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *gdocs.Document); ok {
		r0 = rf(ctx, title)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*gdocs.Document)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, title)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// InsertText provides a mock function with given fields: ctx, documentID, text
func (_m *MockClient) InsertText(ctx context.Context, documentID string, text string) error {
	ret := _m.Called(ctx, documentID, text)

	if len(ret) == 0 {
		panic("no return value specified for InsertText")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string) error); ok {
		r0 = rf(ctx, documentID, text)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// ShareWithEmail provides a mock function with given fields: ctx, documentID, email, role
func (_m *MockClient) ShareWithEmail(ctx context.Context, documentID string, email string, role string) error {
	ret := _m.Called(ctx, documentID, email, role)

	if len(ret) == 0 {
		panic("no return value specified for ShareWithEmail")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, string, string) error); ok {
		r0 = rf(ctx, documentID, email, role)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockClient creates a new instance of MockClient.
func NewMockClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClient {
	mock := &MockClient{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
