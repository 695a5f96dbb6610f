package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"userextra/internal/model"
	"userextra/internal/repository"
)

type MockUserExtraRepository struct {
	mock.Mock
}

func (m *MockUserExtraRepository) Create(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockUserExtraRepository) Update(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockUserExtraRepository) FindByID(ctx context.Context, id int64) (*model.UserExtra, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockUserExtraRepository) FindByUserID(ctx context.Context, userID int64) (*model.UserExtra, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockUserExtraRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserExtraRepository) List(ctx context.Context, pq repository.PageQuery) ([]model.UserExtra, error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserExtra), args.Error(1)
}

func (m *MockUserExtraRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.UserExtraRepository = (*MockUserExtraRepository)(nil)
