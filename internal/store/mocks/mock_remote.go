package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"userextra/internal/model"
)

type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) List(ctx context.Context, query url.Values) ([]model.UserExtra, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserExtra), args.Error(1)
}

func (m *MockRemote) Get(ctx context.Context, id string) (*model.UserExtra, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockRemote) Create(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockRemote) Update(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockRemote) PartialUpdate(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockRemote) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
