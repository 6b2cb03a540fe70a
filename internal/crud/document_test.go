package crud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fitmap/internal/apperr"
	"fitmap/internal/docstore"
	storeMocks "fitmap/internal/docstore/mocks"
	"fitmap/internal/model"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewDocumentService[model.Focus](docstore.NewMemory(), "focus")

	t.Run("generates id and equal timestamps", func(t *testing.T) {
		created, err := svc.Create(ctx, &model.Focus{Name: "Yoga"})

		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)
		assert.False(t, created.CreatedAt.After(time.Now().UTC()))
	})

	t.Run("keeps caller id", func(t *testing.T) {
		created, err := svc.Create(ctx, &model.Focus{Metadata: model.Metadata{ID: "pilates"}, Name: "Pilates"})

		require.NoError(t, err)
		assert.Equal(t, "pilates", created.ID)

		found, err := svc.Find(ctx, "pilates")
		require.NoError(t, err)
		assert.Equal(t, "Pilates", found.Name)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, &model.Focus{Metadata: model.Metadata{ID: "pilates"}, Name: "Again"})

		assert.True(t, apperr.Is(err, apperr.KindConflict))
	})
}

func TestDocumentService_Find(t *testing.T) {
	svc := NewDocumentService[model.Focus](docstore.NewMemory(), "focus")

	_, err := svc.Find(context.Background(), "never-created")

	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDocumentService_IDsOutsideTheCollection(t *testing.T) {
	ctx := context.Background()
	// no expectations: none of these calls may reach the store
	mStore := new(storeMocks.MockStore)
	svc := NewDocumentService[model.Gym](mStore, "gyms")

	t.Run("create rejects the id", func(t *testing.T) {
		_, err := svc.Create(ctx, &model.Gym{Metadata: model.Metadata{ID: "g1/contacts/c1"}})

		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.ErrorIs(t, err, docstore.ErrInvalidID)
	})

	t.Run("reads and writes report not found", func(t *testing.T) {
		for _, id := range []string{"a/b", "g1/contacts/c1", "__name__"} {
			_, err := svc.Find(ctx, id)
			assert.True(t, apperr.Is(err, apperr.KindNotFound), id)

			_, err = svc.Update(ctx, &model.Gym{Metadata: model.Metadata{ID: id}})
			assert.True(t, apperr.Is(err, apperr.KindNotFound), id)

			assert.True(t, apperr.Is(svc.Delete(ctx, id), apperr.KindNotFound), id)
		}
	})

	t.Run("find all omits them", func(t *testing.T) {
		got, err := svc.FindAll(ctx, "a/b", "g1/contacts/c1")

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	mStore.AssertExpectations(t)
	mStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	mStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentService_FindAll(t *testing.T) {
	ctx := context.Background()
	svc := NewDocumentService[model.Focus](docstore.NewMemory(), "focus")
	for _, id := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, &model.Focus{Metadata: model.Metadata{ID: id}, Name: id})
		require.NoError(t, err)
	}

	all, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := svc.FindAll(ctx, "c", "missing", "a")
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "c", some[0].ID)
	assert.Equal(t, "a", some[1].ID)
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewDocumentService[model.PersonalTrainer](docstore.NewMemory(), "personal-trainers",
		WithClock(stepClock(t0)))

	created, err := svc.Create(ctx, &model.PersonalTrainer{
		Name:      "Ana",
		Biography: "old bio",
		Sports:    []string{"Yoga"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, &model.PersonalTrainer{
		Metadata:  model.Metadata{ID: created.ID, CreatedAt: t0.Add(-time.Hour)},
		Name:      "Ana Maria",
		Biography: "new bio",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "new bio", updated.Biography)
	// sports is not in the fields-to-update map and survives the update
	assert.Equal(t, []string{"Yoga"}, updated.Sports)

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.Update(ctx, &model.PersonalTrainer{Name: "x"})
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, &model.PersonalTrainer{Metadata: model.Metadata{ID: "nope"}})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})
}

func TestDocumentService_UpdateAllJoinsFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewDocumentService[model.Focus](docstore.NewMemory(), "focus")
	_, err := svc.Create(ctx, &model.Focus{Metadata: model.Metadata{ID: "yoga"}, Name: "Yoga"})
	require.NoError(t, err)

	updated, err := svc.UpdateAll(ctx, []*model.Focus{
		{Metadata: model.Metadata{ID: "yoga"}, Name: "Hatha Yoga"},
		{Metadata: model.Metadata{ID: "missing"}, Name: "Ghost"},
	})

	require.Len(t, updated, 1)
	assert.Equal(t, "Hatha Yoga", updated[0].Name)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDocumentService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	gyms := NewDocumentService[model.Gym](store, "gyms", WithSubCollections("addresses"))
	addresses := NewSubCollectionService[model.Address](store, "gyms", "addresses")

	gym, err := gyms.Create(ctx, &model.Gym{Biography: "big gym"})
	require.NoError(t, err)
	_, err = addresses.Create(ctx, gym.ID, &model.Address{City: "Recife"})
	require.NoError(t, err)

	require.NoError(t, gyms.Delete(ctx, gym.ID))

	_, err = gyms.Find(ctx, gym.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	left, err := store.List(ctx, docstore.Collection("gyms").Doc(gym.ID).Collection("addresses"))
	require.NoError(t, err)
	assert.Empty(t, left)

	err = gyms.Delete(ctx, gym.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDocumentService_DeleteAllEmptyTouchesNothing(t *testing.T) {
	mStore := new(storeMocks.MockStore)
	svc := NewDocumentService[model.Focus](mStore, "focus")

	err := svc.DeleteAll(context.Background(), []string{})

	assert.NoError(t, err)
	mStore.AssertExpectations(t)
	assert.Empty(t, mStore.Calls)
}

func TestDocumentService_StoreFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(m *storeMocks.MockStore)
		run        func(svc *DocumentService[model.Focus, *model.Focus]) error
		wantKind   apperr.Kind
	}{
		{
			name: "find read error is internal",
			setupMocks: func(m *storeMocks.MockStore) {
				m.On("Get", ctx, docstore.Collection("focus").Doc("f1")).Return(nil, errors.New("unavailable"))
			},
			run: func(svc *DocumentService[model.Focus, *model.Focus]) error {
				_, err := svc.Find(ctx, "f1")
				return err
			},
			wantKind: apperr.KindInternal,
		},
		{
			name: "create conflict",
			setupMocks: func(m *storeMocks.MockStore) {
				m.On("Create", ctx, docstore.Collection("focus").Doc("f1"), mock.Anything).Return(docstore.ErrAlreadyExists)
			},
			run: func(svc *DocumentService[model.Focus, *model.Focus]) error {
				_, err := svc.Create(ctx, &model.Focus{Metadata: model.Metadata{ID: "f1"}, Name: "Yoga"})
				return err
			},
			wantKind: apperr.KindConflict,
		},
		{
			name: "update writes declared fields and updated_at only",
			setupMocks: func(m *storeMocks.MockStore) {
				ref := docstore.Collection("focus").Doc("f1")
				m.On("Update", ctx, ref, mock.MatchedBy(func(fields map[string]any) bool {
					_, stamped := fields[model.FieldUpdatedAt]
					return len(fields) == 2 && fields["name"] == "Yoga" && stamped
				})).Return(docstore.ErrNotFound)
			},
			run: func(svc *DocumentService[model.Focus, *model.Focus]) error {
				_, err := svc.Update(ctx, &model.Focus{Metadata: model.Metadata{ID: "f1"}, Name: "Yoga"})
				return err
			},
			wantKind: apperr.KindNotFound,
		},
		{
			name: "list error",
			setupMocks: func(m *storeMocks.MockStore) {
				m.On("List", ctx, docstore.Collection("focus")).Return(nil, errors.New("timeout"))
			},
			run: func(svc *DocumentService[model.Focus, *model.Focus]) error {
				_, err := svc.FindAll(ctx)
				return err
			},
			wantKind: apperr.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStore)
			tt.setupMocks(mStore)
			svc := NewDocumentService[model.Focus](mStore, "focus")

			err := tt.run(svc)

			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			mStore.AssertExpectations(t)
		})
	}
}
