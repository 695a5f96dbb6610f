package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"userextra/internal/model"
	"userextra/internal/service"
)

type MockUserExtraService struct {
	mock.Mock
}

func (m *MockUserExtraService) Create(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockUserExtraService) Update(ctx context.Context, id int64, e *model.UserExtra) (*model.UserExtra, error) {
	args := m.Called(ctx, id, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockUserExtraService) PartialUpdate(ctx context.Context, id int64, e *model.UserExtra) (*model.UserExtra, error) {
	args := m.Called(ctx, id, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockUserExtraService) List(ctx context.Context, limit, offset int) ([]model.UserExtra, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserExtra), args.Error(1)
}

func (m *MockUserExtraService) Get(ctx context.Context, id int64) (*model.UserExtra, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockUserExtraService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserExtraService) UploadImages(ctx context.Context, id int64, front, back service.ImageUpload) (*model.UserExtra, error) {
	args := m.Called(ctx, id, front, back)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserExtra), args.Error(1)
}

func (m *MockUserExtraService) ImageURL(ctx context.Context, id int64, side service.ImageSide) (string, error) {
	args := m.Called(ctx, id, side)
	return args.String(0), args.Error(1)
}

var _ service.UserExtraService = (*MockUserExtraService)(nil)
