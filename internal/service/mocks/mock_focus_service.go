package mocks

import (
	"context"

	"fitmap/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockFocusService struct {
	mock.Mock
}

func (m *MockFocusService) CreateNames(ctx context.Context, names []string) ([]*model.Focus, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Focus), args.Error(1)
}

func (m *MockFocusService) Find(ctx context.Context, id string) (*model.Focus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Focus), args.Error(1)
}

func (m *MockFocusService) FindAll(ctx context.Context, ids ...string) ([]*model.Focus, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Focus), args.Error(1)
}

func (m *MockFocusService) UpdateAll(ctx context.Context, focuses []*model.Focus) ([]*model.Focus, error) {
	args := m.Called(ctx, focuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Focus), args.Error(1)
}

func (m *MockFocusService) DeleteAll(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
