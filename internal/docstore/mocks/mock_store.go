package mocks

import (
	"context"

	"fitmap/internal/docstore"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, ref docstore.DocRef) (docstore.Snapshot, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(docstore.Snapshot), args.Error(1)
}

func (m *MockStore) GetAll(ctx context.Context, refs []docstore.DocRef) ([]docstore.Snapshot, error) {
	args := m.Called(ctx, refs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]docstore.Snapshot), args.Error(1)
}

func (m *MockStore) List(ctx context.Context, coll docstore.CollectionRef) ([]docstore.Snapshot, error) {
	args := m.Called(ctx, coll)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]docstore.Snapshot), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, ref docstore.DocRef, data any) error {
	args := m.Called(ctx, ref, data)
	return args.Error(0)
}

func (m *MockStore) Update(ctx context.Context, ref docstore.DocRef, fields map[string]any) error {
	args := m.Called(ctx, ref, fields)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, ref docstore.DocRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
